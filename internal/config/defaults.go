package config

// defaultEmbeddingModels maps each provider to its default embedding model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderGoogle: "gemini-embedding-001",
	ProviderOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		EmbeddingModel: defaultEmbeddingModels[ProviderOpenAI],
		Scorer:         ScorerCosine,
		UploadsDir:     "uploads",
		SnapshotsDir:   "embeddings",
		HistoryPath:    "data/history.db",
		MaxFiles:       50,
		MaxUploadBytes: 10 << 20, // 10 MB
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// DefaultEmbeddingModel returns the default embedding model for a provider.
func DefaultEmbeddingModel(provider ProviderType) string {
	if m, ok := defaultEmbeddingModels[provider]; ok {
		return m
	}
	return defaultEmbeddingModels[ProviderOpenAI]
}
