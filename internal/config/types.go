package config

// ProviderType identifies an embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// ScorerType identifies a pairwise scoring backend.
type ScorerType string

const (
	ScorerCosine ScorerType = "cosine"
	ScorerRemote ScorerType = "remote"
)

// Config is the top-level codescan configuration, corresponding to .codescan.yml.
type Config struct {
	Provider       ProviderType `yaml:"provider" koanf:"provider"`
	EmbeddingModel string       `yaml:"embedding_model" koanf:"embedding_model"`
	Scorer         ScorerType   `yaml:"scorer" koanf:"scorer"`
	ScorerEndpoint string       `yaml:"scorer_endpoint" koanf:"scorer_endpoint"`
	UploadsDir     string       `yaml:"uploads_dir" koanf:"uploads_dir"`
	SnapshotsDir   string       `yaml:"snapshots_dir" koanf:"snapshots_dir"`
	HistoryPath    string       `yaml:"history_path" koanf:"history_path"`
	MaxFiles       int          `yaml:"max_files" koanf:"max_files"`
	MaxUploadBytes int64        `yaml:"max_upload_bytes" koanf:"max_upload_bytes"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
