package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CODESCAN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CODESCAN_PROVIDER -> provider, etc.
	if err := k.Load(env.Provider("CODESCAN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CODESCAN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// The embedding model default follows the chosen provider unless the
	// file or environment pinned one explicitly.
	if !k.Exists("embedding_model") {
		cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.Provider)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderGoogle: true,
	ProviderOllama: true,
}

// validScorers is the set of recognized scorer values.
var validScorers = map[ScorerType]bool{
	ScorerCosine: true,
	ScorerRemote: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, google, ollama", c.Provider)
	}

	if c.Scorer != "" && !validScorers[c.Scorer] {
		return fmt.Errorf("invalid scorer %q: must be one of cosine, remote", c.Scorer)
	}
	if c.Scorer == ScorerRemote && c.ScorerEndpoint == "" {
		return fmt.Errorf("scorer_endpoint is required for the remote scorer")
	}

	if c.UploadsDir == "" {
		return fmt.Errorf("uploads_dir is required")
	}
	if c.SnapshotsDir == "" {
		return fmt.Errorf("snapshots_dir is required")
	}

	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be non-negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}
