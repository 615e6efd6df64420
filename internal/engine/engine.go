// Package engine orchestrates a comparison run: it reads a user's
// uploaded files, rebuilds their embedding snapshot, scores every file
// pair, and ranks the results. It is the single entry point the CLI and
// the HTTP server call into.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/codescanhq/codescan/internal/cache"
	"github.com/codescanhq/codescan/internal/history"
	"github.com/codescanhq/codescan/internal/matcher"
	"github.com/codescanhq/codescan/internal/reader"
	"github.com/codescanhq/codescan/internal/similarity"
)

var (
	// ErrNoFiles is returned when the user has no candidate source files.
	ErrNoFiles = errors.New("engine: no source files found")

	// ErrRankOutOfRange is returned by GetDetail for an invalid rank index.
	ErrRankOutOfRange = errors.New("engine: rank index out of range")
)

// Detail explains one ranked pair with its shared lines.
type Detail struct {
	FileA   string          `json:"file_1"`
	FileB   string          `json:"file_2"`
	Score   float64         `json:"similarity"`
	Matches []matcher.Match `json:"matches"`
}

// Engine ties the reader, cache store, scorer, and matcher together.
// All dependencies are injected at construction; Engine itself holds no
// hidden global state and is safe for concurrent use across users.
type Engine struct {
	store    *cache.Store
	scorer   similarity.PairScorer
	runs     *history.Store // optional
	exclude  []string
	maxFiles int
}

// New creates an Engine. runs may be nil to disable history recording.
// maxFiles is the default per-run file cap (0 = unlimited).
func New(store *cache.Store, scorer similarity.PairScorer, runs *history.Store, exclude []string, maxFiles int) *Engine {
	return &Engine{
		store:    store,
		scorer:   scorer,
		runs:     runs,
		exclude:  exclude,
		maxFiles: maxFiles,
	}
}

// Status describes the services the engine was built with.
type Status struct {
	Embedder string `json:"embedder"`
	Scorer   string `json:"scorer"`
	History  bool   `json:"history"`
}

// Status reports the configured embedder and scorer.
func (e *Engine) Status() Status {
	return Status{
		Embedder: e.store.EmbedderName(),
		Scorer:   e.scorer.Name(),
		History:  e.runs != nil,
	}
}

// UserDir returns the upload folder for the given user.
func (e *Engine) UserDir(userID string) string {
	return e.store.UserDir(userID)
}

// ListFiles returns the user's candidate source files, sorted by name.
func (e *Engine) ListFiles(userID string) ([]string, error) {
	return reader.ListFiles(e.store.UserDir(userID), e.exclude)
}

// RunComparison embeds the user's files (capped at maxFiles; 0 = the
// engine default), scores all unordered pairs, and returns the ranked
// result list. The whole run is synchronous: the caller blocks through
// file reads, embedding, and the quadratic pairwise scoring.
func (e *Engine) RunComparison(ctx context.Context, userID string, maxFiles int) ([]similarity.Result, error) {
	started := time.Now()

	files, err := e.ListFiles(userID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	if maxFiles <= 0 {
		maxFiles = e.maxFiles
	}

	snap, err := e.store.Rebuild(ctx, userID, files, maxFiles)
	if err != nil {
		return nil, err
	}

	results, err := similarity.ScoreAll(ctx, snap, e.scorer)
	if err != nil {
		return nil, fmt.Errorf("pairwise scoring: %w", err)
	}
	similarity.Rank(results)

	e.recordRun(ctx, userID, snap.Count(), results, time.Since(started))
	return results, nil
}

// LatestResults recomputes the ranked result list from the user's
// persisted snapshot, without re-reading or re-embedding any file. It
// returns cache.ErrNotFound if no comparison has run yet.
func (e *Engine) LatestResults(ctx context.Context, userID string) ([]similarity.Result, error) {
	snap, err := e.store.Load(userID)
	if err != nil {
		return nil, err
	}

	results, err := similarity.ScoreAll(ctx, snap, e.scorer)
	if err != nil {
		return nil, fmt.Errorf("pairwise scoring: %w", err)
	}
	return similarity.Rank(results), nil
}

// GetDetail returns the line-level match explanation for the pair at the
// given rank index in the user's latest comparison. The ranked list is
// recomputed from the persisted snapshot; the matches themselves come
// from the raw file contents, not the embeddings.
func (e *Engine) GetDetail(ctx context.Context, userID string, rankIndex int) (*Detail, error) {
	snap, err := e.store.Load(userID)
	if err != nil {
		return nil, err
	}

	results, err := similarity.ScoreAll(ctx, snap, e.scorer)
	if err != nil {
		return nil, fmt.Errorf("pairwise scoring: %w", err)
	}
	similarity.Rank(results)

	if rankIndex < 0 || rankIndex >= len(results) {
		return nil, fmt.Errorf("%w: %d of %d", ErrRankOutOfRange, rankIndex, len(results))
	}
	pair := results[rankIndex]

	textA, err := reader.ReadFile(snap.Embeddings[pair.FileA].FilePath)
	if err != nil {
		return nil, err
	}
	textB, err := reader.ReadFile(snap.Embeddings[pair.FileB].FilePath)
	if err != nil {
		return nil, err
	}

	matches := matcher.FindMatches(textA, textB, reader.CommentMarker(pair.FileA))
	return &Detail{
		FileA:   pair.FileA,
		FileB:   pair.FileB,
		Score:   pair.Score,
		Matches: matches,
	}, nil
}

// Reset deletes the user's uploads, snapshot, and run history.
func (e *Engine) Reset(ctx context.Context, userID string) error {
	if err := e.store.Reset(userID); err != nil {
		return err
	}
	if e.runs != nil {
		if err := e.runs.DeleteByUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// History returns the user's recorded comparison runs, most recent first.
func (e *Engine) History(ctx context.Context, userID string, limit int) ([]history.Run, error) {
	if e.runs == nil {
		return nil, nil
	}
	return e.runs.ListByUser(ctx, userID, limit)
}

// recordRun persists a history record. Failures are logged, not fatal:
// the comparison itself succeeded.
func (e *Engine) recordRun(ctx context.Context, userID string, fileCount int, results []similarity.Result, elapsed time.Duration) {
	if e.runs == nil {
		return
	}

	var top float64
	if len(results) > 0 {
		top = results[0].Score
	}

	_, err := e.runs.Record(ctx, history.Run{
		UserID:     userID,
		FileCount:  fileCount,
		PairCount:  len(results),
		TopScore:   top,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		log.Printf("engine: recording run for %s: %v", userID, err)
	}
}
