package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Scorer != ScorerCosine {
		t.Errorf("expected default scorer %q, got %q", ScorerCosine, cfg.Scorer)
	}
	if cfg.MaxFiles != 50 {
		t.Errorf("expected default max_files 50, got %d", cfg.MaxFiles)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.codescan.yml")

	original := DefaultConfig()
	original.Provider = ProviderOllama
	original.EmbeddingModel = "nomic-embed-text"
	original.Scorer = ScorerRemote
	original.ScorerEndpoint = "http://localhost:9000/score"
	original.MaxFiles = 25
	original.Exclude = []string{"*.min.js", "legacy_*"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.EmbeddingModel != original.EmbeddingModel {
		t.Errorf("embedding_model: got %q, want %q", loaded.EmbeddingModel, original.EmbeddingModel)
	}
	if loaded.Scorer != original.Scorer {
		t.Errorf("scorer: got %q, want %q", loaded.Scorer, original.Scorer)
	}
	if loaded.ScorerEndpoint != original.ScorerEndpoint {
		t.Errorf("scorer_endpoint: got %q, want %q", loaded.ScorerEndpoint, original.ScorerEndpoint)
	}
	if loaded.MaxFiles != original.MaxFiles {
		t.Errorf("max_files: got %d, want %d", loaded.MaxFiles, original.MaxFiles)
	}
	if len(loaded.Exclude) != len(original.Exclude) {
		t.Errorf("exclude length: got %d, want %d", len(loaded.Exclude), len(original.Exclude))
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CODESCAN_PROVIDER", "ollama")
	t.Setenv("CODESCAN_MAX_FILES", "10")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("provider: got %q, want ollama", cfg.Provider)
	}
	if cfg.MaxFiles != 10 {
		t.Errorf("max_files: got %d, want 10", cfg.MaxFiles)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }, true},
		{"unknown scorer", func(c *Config) { c.Scorer = "euclidean" }, true},
		{"remote scorer without endpoint", func(c *Config) { c.Scorer = ScorerRemote }, true},
		{"remote scorer with endpoint", func(c *Config) {
			c.Scorer = ScorerRemote
			c.ScorerEndpoint = "http://localhost:9000/score"
		}, false},
		{"negative max_files", func(c *Config) { c.MaxFiles = -1 }, true},
		{"empty uploads_dir", func(c *Config) { c.UploadsDir = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
