package similarity

import (
	"context"
	"fmt"

	"github.com/viant/vec/search"
)

// PairScorer scores how similar two embedding vectors are, in [0, 1].
// Implementations must be safe for concurrent use.
type PairScorer interface {
	// Score returns the similarity of the two vectors, 0 = unrelated,
	// 1 = identical.
	Score(ctx context.Context, a, b []float32) (float64, error)

	// Name identifies the scoring backend.
	Name() string
}

// NewScorer creates a pair scorer. Supported kinds: "cosine" (local) and
// "remote" (HTTP scoring service at endpoint).
func NewScorer(kind, endpoint string) (PairScorer, error) {
	switch kind {
	case "cosine", "":
		return &CosineScorer{}, nil
	case "remote":
		if endpoint == "" {
			return nil, fmt.Errorf("remote scorer requires an endpoint")
		}
		return NewRemoteScorer(endpoint), nil
	default:
		return nil, fmt.Errorf("unsupported scorer kind: %s", kind)
	}
}

// CosineScorer scores pairs by cosine similarity, clamped to [0, 1].
type CosineScorer struct{}

func (CosineScorer) Name() string { return "cosine" }

func (CosineScorer) Score(_ context.Context, a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("cosine: dimension mismatch (%d vs %d)", len(a), len(b))
	}

	va := search.Float32s(a)
	ma := va.Magnitude()
	mb := search.Float32s(b).Magnitude()
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("cosine: zero-magnitude vector")
	}

	cos := 1 - float64(va.CosineDistanceWithMagnitude(b, ma, mb))
	// Opposite-direction vectors carry no plagiarism signal.
	if cos < 0 {
		return 0, nil
	}
	if cos > 1 {
		cos = 1
	}
	return cos, nil
}
