package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded comparison run.
type Run struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileCount  int       `json:"file_count"`
	PairCount  int       `json:"pair_count"`
	TopScore   float64   `json:"top_score"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists comparison run records.
type Store struct {
	db *DB
}

// NewStore creates a run history store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Record inserts a run record and returns it with its generated ID.
func (s *Store) Record(ctx context.Context, run Run) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comparison_runs (id, user_id, file_count, pair_count, top_score, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.UserID, run.FileCount, run.PairCount, run.TopScore,
		run.DurationMS, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &run, nil
}

// ListByUser returns the user's runs, most recent first, capped at limit
// (0 = default of 50).
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, file_count, pair_count, top_score, duration_ms, created_at
		 FROM comparison_runs WHERE user_id = ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.UserID, &r.FileCount, &r.PairCount, &r.TopScore, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteByUser removes all run records for the user.
func (s *Store) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM comparison_runs WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting runs: %w", err)
	}
	return nil
}
