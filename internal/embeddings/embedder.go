package embeddings

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrZeroVector is returned when a provider produces a zero-magnitude
// vector, which cannot be normalized. Callers treat this as a per-file
// failure rather than a fatal one.
var ErrZeroVector = errors.New("embeddings: zero-magnitude vector")

// Embedder generates a vector representation for one source text.
// Implementations returned by NewEmbedder always produce unit-normalized
// vectors and are safe for concurrent use.
type Embedder interface {
	// Embed generates the embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// NewEmbedder creates an embedder for the given provider type and model.
// Supported provider types: "openai", "google", "ollama". The returned
// embedder normalizes every vector to unit length.
func NewEmbedder(providerType, model string) (Embedder, error) {
	var e Embedder

	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		e = NewOpenAIEmbedder(apiKey, OpenAIModel(model))

	case "google":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		e = NewGoogleEmbedder(apiKey, GoogleModel(model))

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		e = NewOllamaEmbedder(model, 0, host)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}

	return Normalized(e), nil
}

// Normalized wraps an embedder so that every vector it returns is
// L2-normalized. A zero-magnitude vector yields ErrZeroVector.
func Normalized(e Embedder) Embedder {
	return &normalizingEmbedder{inner: e}
}

type normalizingEmbedder struct {
	inner Embedder
}

func (n *normalizingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := n.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := Normalize(vec); err != nil {
		return nil, fmt.Errorf("normalizing %s output: %w", n.inner.Name(), err)
	}
	return vec, nil
}

func (n *normalizingEmbedder) Dimensions() int { return n.inner.Dimensions() }
func (n *normalizingEmbedder) Name() string    { return n.inner.Name() }
