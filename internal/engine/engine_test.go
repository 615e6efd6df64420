package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/codescanhq/codescan/internal/cache"
	"github.com/codescanhq/codescan/internal/history"
	"github.com/codescanhq/codescan/internal/similarity"
)

// charEmbedder produces deterministic normalized character-frequency
// vectors: files sharing more characters score as more similar.
type charEmbedder struct {
	dims int
}

func (m *charEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, fmt.Errorf("zero vector")
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

func (m *charEmbedder) Dimensions() int { return m.dims }
func (m *charEmbedder) Name() string    { return "char" }

func newTestEngine(t *testing.T) (*Engine, *cache.Store) {
	t.Helper()
	root := t.TempDir()
	store := cache.NewStore(filepath.Join(root, "uploads"), filepath.Join(root, "embeddings"), &charEmbedder{dims: 32})

	db, err := history.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	eng := New(store, similarity.CosineScorer{}, history.NewStore(db), nil, 0)
	return eng, store
}

func writeFiles(t *testing.T, store *cache.Store, userID string, files map[string]string) {
	t.Helper()
	dir := store.UserDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunComparison(t *testing.T) {
	eng, store := newTestEngine(t)
	writeFiles(t, store, "u1", map[string]string{
		"a.py": "total = 0\nfor i in range(10):\n    total += i\nprint(total)\n",
		"b.py": "total = 0\nfor i in range(10):\n    total += i\nprint(total)\n",
		"c.py": "import json\nwith open('x') as f:\n    data = json.load(f)\n",
	})

	results, err := eng.RunComparison(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("RunComparison: %v", err)
	}
	if len(results) != 3 { // 3*2/2 pairs
		t.Fatalf("RunComparison: %d results, want 3", len(results))
	}

	// Identical files must rank first with a perfect score.
	top := results[0]
	if top.FileA != "a.py" || top.FileB != "b.py" {
		t.Errorf("RunComparison: top pair (%s,%s), want (a.py,b.py)", top.FileA, top.FileB)
	}
	if math.Abs(top.Score-100) > 1e-4 {
		t.Errorf("RunComparison: top score %v, want 100", top.Score)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("RunComparison: results not sorted descending at %d", i)
		}
	}
}

func TestRunComparison_NoFiles(t *testing.T) {
	eng, _ := newTestEngine(t)
	if _, err := eng.RunComparison(context.Background(), "empty", 0); !errors.Is(err, ErrNoFiles) {
		t.Errorf("RunComparison: got %v, want ErrNoFiles", err)
	}
}

func TestRunComparison_MaxFiles(t *testing.T) {
	eng, store := newTestEngine(t)
	files := map[string]string{}
	for i := 0; i < 6; i++ {
		files[fmt.Sprintf("f%d.py", i)] = fmt.Sprintf("print(%d)\nvalue = %d\n", i, i)
	}
	writeFiles(t, store, "u1", files)

	results, err := eng.RunComparison(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("RunComparison: %v", err)
	}
	if len(results) != 3 { // 3*2/2
		t.Fatalf("RunComparison: %d results, want 3", len(results))
	}
	for _, r := range results {
		for _, name := range []string{r.FileA, r.FileB} {
			if name != "f0.py" && name != "f1.py" && name != "f2.py" {
				t.Errorf("RunComparison: %s outside the file cap", name)
			}
		}
	}
}

func TestRunComparison_RecordsHistory(t *testing.T) {
	eng, store := newTestEngine(t)
	writeFiles(t, store, "u1", map[string]string{
		"a.py": "print('hello world')\n",
		"b.py": "print('hello world')\n",
	})

	if _, err := eng.RunComparison(context.Background(), "u1", 0); err != nil {
		t.Fatalf("RunComparison: %v", err)
	}

	runs, err := eng.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("History: %d runs, want 1", len(runs))
	}
	if runs[0].FileCount != 2 || runs[0].PairCount != 1 {
		t.Errorf("History: got %+v", runs[0])
	}
}

func TestGetDetail(t *testing.T) {
	eng, store := newTestEngine(t)
	writeFiles(t, store, "u1", map[string]string{
		"a.py": "x = 1\n# comment\nprint(x)\n",
		"b.py": "print(x)\ny = 2\n",
	})

	if _, err := eng.RunComparison(context.Background(), "u1", 0); err != nil {
		t.Fatalf("RunComparison: %v", err)
	}

	detail, err := eng.GetDetail(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.FileA != "a.py" || detail.FileB != "b.py" {
		t.Errorf("GetDetail: pair (%s,%s)", detail.FileA, detail.FileB)
	}
	if len(detail.Matches) != 1 {
		t.Fatalf("GetDetail: %d matches, want 1: %+v", len(detail.Matches), detail.Matches)
	}
	m := detail.Matches[0]
	if m.LineA != 2 || m.LineB != 0 || m.Text != "print(x)" {
		t.Errorf("GetDetail: match %+v", m)
	}
}

func TestGetDetail_BeforeAnyRun(t *testing.T) {
	eng, _ := newTestEngine(t)
	if _, err := eng.GetDetail(context.Background(), "u1", 0); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("GetDetail: got %v, want cache.ErrNotFound", err)
	}
}

func TestGetDetail_RankOutOfRange(t *testing.T) {
	eng, store := newTestEngine(t)
	writeFiles(t, store, "u1", map[string]string{
		"a.py": "print('hello')\n",
		"b.py": "print('world')\n",
	})
	if _, err := eng.RunComparison(context.Background(), "u1", 0); err != nil {
		t.Fatalf("RunComparison: %v", err)
	}

	if _, err := eng.GetDetail(context.Background(), "u1", 5); !errors.Is(err, ErrRankOutOfRange) {
		t.Errorf("GetDetail: got %v, want ErrRankOutOfRange", err)
	}
	if _, err := eng.GetDetail(context.Background(), "u1", -1); !errors.Is(err, ErrRankOutOfRange) {
		t.Errorf("GetDetail(-1): got %v, want ErrRankOutOfRange", err)
	}
}

func TestReset(t *testing.T) {
	eng, store := newTestEngine(t)
	writeFiles(t, store, "u1", map[string]string{
		"a.py": "print('hello')\n",
		"b.py": "print('hello')\n",
	})
	if _, err := eng.RunComparison(context.Background(), "u1", 0); err != nil {
		t.Fatalf("RunComparison: %v", err)
	}

	if err := eng.Reset(context.Background(), "u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Snapshot gone, files gone, history gone.
	if _, err := store.Load("u1"); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("Load after Reset: got %v, want ErrNotFound", err)
	}
	files, err := eng.ListFiles("u1")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles after Reset: %v", files)
	}
	runs, err := eng.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("History after Reset: %+v", runs)
	}
}
