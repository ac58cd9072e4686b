// Package highscore persists the best score across rounds.
package highscore

import "sync"

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store reads and writes the single persisted high score.
type Store interface {
	// Load returns the stored high score, or 0 if none has been saved.
	Load() (int, error)
	// Save stores score unless a higher one is already stored.
	Save(score int) error
}

// MemoryStore keeps the high score for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current value.
func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save keeps the larger of score and the current value.
func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = max(m.score, score)
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
