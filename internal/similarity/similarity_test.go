package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codescanhq/codescan/internal/cache"
)

func TestCosineScorer(t *testing.T) {
	s := CosineScorer{}
	ctx := context.Background()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"partial", []float32{1, 0}, []float32{0.6, 0.8}, 0.6},
	}
	for _, tt := range tests {
		got, err := s.Score(ctx, tt.a, tt.b)
		if err != nil {
			t.Errorf("%s: Score: %v", tt.name, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCosineScorer_Errors(t *testing.T) {
	s := CosineScorer{}
	ctx := context.Background()

	if _, err := s.Score(ctx, []float32{1, 0}, []float32{1}); err == nil {
		t.Error("Score: expected error for dimension mismatch")
	}
	if _, err := s.Score(ctx, []float32{0, 0}, []float32{1, 0}); err == nil {
		t.Error("Score: expected error for zero vector")
	}
}

func TestRemoteScorer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(remoteScoreResponse{Similarity: 0.42})
	}))
	defer srv.Close()

	s := NewRemoteScorer(srv.URL)
	got, err := s.Score(context.Background(), []float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.42 {
		t.Errorf("Score: got %v, want 0.42", got)
	}
}

func TestRemoteScorer_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemoteScorer(srv.URL)
	if _, err := s.Score(context.Background(), []float32{1}, []float32{1}); err == nil {
		t.Fatal("Score: expected error from failing service")
	}
}

func TestRemoteScorer_OutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(remoteScoreResponse{Similarity: 1.5})
	}))
	defer srv.Close()

	s := NewRemoteScorer(srv.URL)
	if _, err := s.Score(context.Background(), []float32{1}, []float32{1}); err == nil {
		t.Fatal("Score: expected error for out-of-range similarity")
	}
}

func snapshotOf(vectors map[string][]float32) *cache.Snapshot {
	snap := &cache.Snapshot{Embeddings: make(map[string]cache.Embedding, len(vectors))}
	for name, vec := range vectors {
		snap.Embeddings[name] = cache.Embedding{Vector: vec, FileName: name}
	}
	snap.Metadata.FileCount = len(vectors)
	return snap
}

func TestScoreAll_PairCount(t *testing.T) {
	vectors := map[string][]float32{}
	for i := 0; i < 6; i++ {
		vec := make([]float32, 6)
		vec[i] = 1
		vectors[fmt.Sprintf("f%d.py", i)] = vec
	}

	results, err := ScoreAll(context.Background(), snapshotOf(vectors), CosineScorer{})
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(results) != 15 { // 6*5/2
		t.Fatalf("ScoreAll: %d results, want 15", len(results))
	}

	seen := map[string]bool{}
	for _, r := range results {
		if r.FileA == r.FileB {
			t.Errorf("ScoreAll: self pair %s", r.FileA)
		}
		if r.FileA > r.FileB {
			t.Errorf("ScoreAll: pair not name-ordered: %s, %s", r.FileA, r.FileB)
		}
		key := r.FileA + "|" + r.FileB
		if seen[key] {
			t.Errorf("ScoreAll: duplicate pair %s", key)
		}
		seen[key] = true
	}
}

// failingScorer fails on one specific pair.
type failingScorer struct{}

func (failingScorer) Name() string { return "failing" }

func (failingScorer) Score(_ context.Context, a, b []float32) (float64, error) {
	if a[0] == 1 && b[0] == 1 {
		return 0, fmt.Errorf("model error")
	}
	return 0.5, nil
}

func TestScoreAll_FailureAbortsRun(t *testing.T) {
	vectors := map[string][]float32{
		"a.py": {1, 0},
		"b.py": {1, 0},
		"c.py": {0, 1},
	}

	_, err := ScoreAll(context.Background(), snapshotOf(vectors), failingScorer{})
	if err == nil {
		t.Fatal("ScoreAll: expected failure to abort the run")
	}
}

func TestRank_NumericDescending(t *testing.T) {
	// A lexicographic sort on formatted percentages would put "9.00%"
	// after "80.00%"; the numeric sort must not.
	results := []Result{
		{FileA: "a.py", FileB: "b.py", Score: 9.0},
		{FileA: "a.py", FileB: "c.py", Score: 80.0},
		{FileA: "b.py", FileB: "c.py", Score: 45.5},
	}

	Rank(results)

	want := []float64{80.0, 45.5, 9.0}
	for i, r := range results {
		if r.Score != want[i] {
			t.Fatalf("Rank: position %d has score %v, want %v", i, r.Score, want[i])
		}
	}
}

func TestRank_TieBreakByName(t *testing.T) {
	results := []Result{
		{FileA: "b.py", FileB: "d.py", Score: 50},
		{FileA: "a.py", FileB: "c.py", Score: 50},
		{FileA: "a.py", FileB: "b.py", Score: 50},
	}

	Rank(results)

	want := [][2]string{{"a.py", "b.py"}, {"a.py", "c.py"}, {"b.py", "d.py"}}
	for i, r := range results {
		if r.FileA != want[i][0] || r.FileB != want[i][1] {
			t.Fatalf("Rank: position %d is (%s,%s), want (%s,%s)",
				i, r.FileA, r.FileB, want[i][0], want[i][1])
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	build := func() []Result {
		return []Result{
			{FileA: "x.py", FileB: "y.py", Score: 33.3},
			{FileA: "a.py", FileB: "z.py", Score: 66.6},
			{FileA: "m.py", FileB: "n.py", Score: 33.3},
		}
	}

	first := Rank(build())
	second := Rank(build())
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Rank: order differs between identical runs at %d", i)
		}
	}
}

func TestCosineScorerOddLength(t *testing.T) {
	// A length that is not a round power of two, so the tail elements
	// past any vectorized stride still count.
	a := []float32{1, 2, 3, 4, 5, 6, 7}
	b := []float32{7, 6, 5, 4, 3, 2, 1}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	want := dot / math.Sqrt(na*nb)

	got, err := CosineScorer{}.Score(context.Background(), a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("Score: got %v, want %v", got, want)
	}
}
