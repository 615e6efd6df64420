package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to codescan! Let's configure your instance.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "google", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.Provider)

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("Note: set %s before running comparisons.\n\n", envVar)
	}

	// 2. Scoring backend.
	scorerPrompt := promptui.Select{
		Label: "Select pairwise scorer",
		Items: []string{
			"cosine - local cosine similarity over embeddings",
			"remote - external scoring service (siamese model)",
		},
	}
	scorerIdx, _, err := scorerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scorer selection: %w", err)
	}
	if scorerIdx == 1 {
		cfg.Scorer = ScorerRemote
		endpointPrompt := promptui.Prompt{
			Label:   "Scoring service URL",
			Default: "http://localhost:9000/score",
		}
		endpoint, err := endpointPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("endpoint input: %w", err)
		}
		cfg.ScorerEndpoint = endpoint
	}

	// 3. File cap per comparison run.
	maxFilesPrompt := promptui.Prompt{
		Label:   "Maximum files per comparison run",
		Default: strconv.Itoa(cfg.MaxFiles),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("must be a non-negative integer")
			}
			return nil
		},
	}
	maxFilesStr, err := maxFilesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("max files input: %w", err)
	}
	cfg.MaxFiles, _ = strconv.Atoi(maxFilesStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
