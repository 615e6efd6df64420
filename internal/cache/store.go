package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/codescanhq/codescan/internal/embeddings"
	"github.com/codescanhq/codescan/internal/progress"
	"github.com/codescanhq/codescan/internal/reader"
)

var (
	// ErrNotFound is returned by Load when no snapshot exists for the user.
	ErrNotFound = errors.New("cache: no snapshot for user")

	// ErrNoEmbeddings is returned by Rebuild when not a single file could
	// be embedded. The prior snapshot, if any, is left untouched.
	ErrNoEmbeddings = errors.New("cache: no files embedded successfully")
)

// Store persists per-user embedding snapshots as JSON documents and owns
// the per-user upload folders. Rebuild, Load, and Reset for the same user
// are serialized behind a per-user mutex, so a Load immediately following
// a Rebuild always observes the just-written snapshot.
type Store struct {
	uploadsDir   string
	snapshotsDir string
	embedder     embeddings.Embedder

	// Reporter, when set, receives per-file progress during Rebuild.
	Reporter progress.Reporter

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is a reference-counted per-user mutex. Counting holders lets
// the store drop a user's entry once the last one releases, so the lock
// map does not grow with every user ever seen.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates a snapshot store rooted at the given directories.
func NewStore(uploadsDir, snapshotsDir string, embedder embeddings.Embedder) *Store {
	return &Store{
		uploadsDir:   uploadsDir,
		snapshotsDir: snapshotsDir,
		embedder:     embedder,
		locks:        make(map[string]*userLock),
	}
}

// UserDir returns the upload folder for the given user.
func (s *Store) UserDir(userID string) string {
	return filepath.Join(s.uploadsDir, "user_"+userID)
}

// EmbedderName reports which provider/model backs this store.
func (s *Store) EmbedderName() string { return s.embedder.Name() }

// SnapshotPath returns the snapshot file path for the given user.
func (s *Store) SnapshotPath(userID string) string {
	return filepath.Join(s.snapshotsDir, "embeddings_"+userID+".json")
}

// acquire blocks until the caller holds the given user's lock. The ref
// count is taken before blocking, so a waiter never ends up holding a
// mutex that a later caller has replaced.
func (s *Store) acquire(userID string) *userLock {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks the user's lock and drops the map entry when no other
// caller is holding or waiting on it.
func (s *Store) release(userID string, l *userLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
	s.mu.Unlock()
}

// Rebuild embeds the given files (names within the user's upload folder)
// and atomically replaces the user's snapshot. Files are processed in name
// order; when maxFiles > 0 only the first maxFiles names are considered,
// so capping is reproducible. Per-file embedding failures are logged and
// the file is skipped. If no file embeds successfully the rebuild fails
// with ErrNoEmbeddings and the previous snapshot is preserved.
func (s *Store) Rebuild(ctx context.Context, userID string, files []string, maxFiles int) (*Snapshot, error) {
	lock := s.acquire(userID)
	defer s.release(userID, lock)

	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)
	if maxFiles > 0 && len(sorted) > maxFiles {
		sorted = sorted[:maxFiles]
	}

	snap := &Snapshot{
		Metadata: Metadata{
			UserID:    userID,
			Timestamp: time.Now().UTC(),
		},
		Embeddings: make(map[string]Embedding, len(sorted)),
	}

	if s.Reporter != nil {
		s.Reporter.Start(len(sorted))
		defer s.Reporter.Finish()
	}

	userDir := s.UserDir(userID)
	for i, name := range sorted {
		if s.Reporter != nil {
			s.Reporter.Update(i+1, name)
		}
		path := filepath.Join(userDir, name)

		text, err := reader.ReadFile(path)
		if err != nil {
			log.Printf("cache: skipping %s for user %s: %v", name, userID, err)
			continue
		}

		vec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			log.Printf("cache: embedding %s for user %s failed: %v", name, userID, err)
			continue
		}

		snap.Embeddings[name] = Embedding{
			Vector:   vec,
			FilePath: path,
			FileName: name,
		}
	}

	if len(snap.Embeddings) == 0 {
		return nil, ErrNoEmbeddings
	}
	snap.Metadata.FileCount = len(snap.Embeddings)

	if err := s.write(userID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load reads the user's persisted snapshot. It returns ErrNotFound if no
// snapshot has been built yet.
func (s *Store) Load(userID string) (*Snapshot, error) {
	lock := s.acquire(userID)
	defer s.release(userID, lock)

	return s.read(userID)
}

// Reset deletes the user's upload folder and snapshot. It is idempotent:
// resetting a user with no state is not an error.
func (s *Store) Reset(userID string) error {
	lock := s.acquire(userID)
	defer s.release(userID, lock)

	if err := os.RemoveAll(s.UserDir(userID)); err != nil {
		return fmt.Errorf("removing uploads for %s: %w", userID, err)
	}
	if err := os.Remove(s.SnapshotPath(userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing snapshot for %s: %w", userID, err)
	}
	return nil
}

// write persists the snapshot atomically: marshal to a temp file in the
// snapshot directory, then rename over the previous snapshot.
func (s *Store) write(userID string, snap *Snapshot) error {
	if err := os.MkdirAll(s.snapshotsDir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling snapshot for %s: %w", userID, err)
	}

	tmp, err := os.CreateTemp(s.snapshotsDir, "embeddings_"+userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.SnapshotPath(userID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot for %s: %w", userID, err)
	}
	return nil
}

func (s *Store) read(userID string) (*Snapshot, error) {
	data, err := os.ReadFile(s.SnapshotPath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading snapshot for %s: %w", userID, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot for %s: %w", userID, err)
	}
	return &snap, nil
}
