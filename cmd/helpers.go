package cmd

import (
	"fmt"

	"github.com/codescanhq/codescan/internal/cache"
	"github.com/codescanhq/codescan/internal/config"
	"github.com/codescanhq/codescan/internal/embeddings"
	"github.com/codescanhq/codescan/internal/engine"
	"github.com/codescanhq/codescan/internal/history"
	"github.com/codescanhq/codescan/internal/similarity"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `codescan init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildEngine constructs the comparison engine and its dependencies from
// config. The returned close function releases the history database.
func buildEngine(cfg *config.Config) (*engine.Engine, *cache.Store, func(), error) {
	embedder, err := embeddings.NewEmbedder(string(cfg.Provider), cfg.EmbeddingModel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	scorer, err := similarity.NewScorer(string(cfg.Scorer), cfg.ScorerEndpoint)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating scorer: %w", err)
	}

	store := cache.NewStore(cfg.UploadsDir, cfg.SnapshotsDir, embedder)

	db, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening history database: %w", err)
	}

	eng := engine.New(store, scorer, history.NewStore(db), cfg.Exclude, cfg.MaxFiles)
	return eng, store, func() { db.Close() }, nil
}
