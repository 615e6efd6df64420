package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RemoteScorer scores pairs by calling an external scoring service, such
// as a siamese model behind an HTTP endpoint. Each pair costs one request;
// there is no batching.
type RemoteScorer struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteScorer creates a scorer that POSTs vector pairs to endpoint.
func NewRemoteScorer(endpoint string) *RemoteScorer {
	return &RemoteScorer{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

func (s *RemoteScorer) Name() string { return "remote" }

type remoteScoreRequest struct {
	EmbeddingA []float32 `json:"embedding_a"`
	EmbeddingB []float32 `json:"embedding_b"`
}

type remoteScoreResponse struct {
	Similarity float64 `json:"similarity"`
}

func (s *RemoteScorer) Score(ctx context.Context, a, b []float32) (float64, error) {
	body, err := json.Marshal(remoteScoreRequest{EmbeddingA: a, EmbeddingB: b})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("scoring service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result remoteScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}

	if result.Similarity < 0 || result.Similarity > 1 {
		return 0, fmt.Errorf("scoring service returned out-of-range similarity %v", result.Similarity)
	}
	return result.Similarity, nil
}
