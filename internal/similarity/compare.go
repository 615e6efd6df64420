package similarity

import (
	"context"
	"fmt"
	"sort"

	"github.com/codescanhq/codescan/internal/cache"
)

// Result is one scored unordered file pair. FileA < FileB by name.
type Result struct {
	FileA string  `json:"file_1"`
	FileB string  `json:"file_2"`
	Score float64 `json:"similarity"` // percentage, 0-100
}

// ScoreAll scores every unordered file pair in the snapshot, invoking the
// scorer once per pair in the snapshot's name-sorted order. Any scoring
// failure aborts the whole run: a partially scored list would rank pairs
// against an incomplete field.
//
// The cost is deliberately n·(n−1)/2 scorer calls with no batching, which
// is acceptable for the small per-user file sets this system handles.
func ScoreAll(ctx context.Context, snap *cache.Snapshot, scorer PairScorer) ([]Result, error) {
	names := snap.Names()

	results := make([]Result, 0, len(names)*(len(names)-1)/2)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a := snap.Embeddings[names[i]]
			b := snap.Embeddings[names[j]]

			score, err := scorer.Score(ctx, a.Vector, b.Vector)
			if err != nil {
				return nil, fmt.Errorf("scoring %s vs %s: %w", names[i], names[j], err)
			}

			results = append(results, Result{
				FileA: names[i],
				FileB: names[j],
				Score: score * 100,
			})
		}
	}
	return results, nil
}

// Rank sorts results by numeric score descending, in place, and returns
// the slice. Equal scores are ordered by (FileA, FileB) ascending so
// repeated runs over the same input produce the same order. The sort key
// is the float score itself, never its formatted percentage.
func Rank(results []Result) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].FileA != results[j].FileA {
			return results[i].FileA < results[j].FileA
		}
		return results[i].FileB < results[j].FileB
	})
	return results
}
