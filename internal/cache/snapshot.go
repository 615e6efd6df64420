package cache

import (
	"sort"
	"time"
)

// Embedding is one file's stored vector, as persisted in the snapshot JSON.
type Embedding struct {
	Vector   []float32 `json:"embedding"`
	FilePath string    `json:"file_path"`
	FileName string    `json:"file_name"`
}

// Metadata describes when and for whom a snapshot was built.
type Metadata struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	FileCount int       `json:"file_count"`
}

// Snapshot is one user's full embedding set. Exactly one snapshot is live
// per user at a time; Rebuild replaces it wholesale.
type Snapshot struct {
	Metadata   Metadata             `json:"metadata"`
	Embeddings map[string]Embedding `json:"embeddings"`
}

// Names returns the file names in the snapshot, sorted. All pair
// generation iterates in this order so results are deterministic.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Embeddings))
	for name := range s.Embeddings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of embedded files in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.Embeddings)
}
