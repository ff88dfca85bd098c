// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Sessions are ephemeral: state is lost when the process restarts, which
// matches the product (no persistence across sessions).
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Mutations run through Update under the write lock, so the timer
//     goroutine and HTTP handlers never interleave partial writes.
//   - Reads go through Snapshot, which returns a deep copy: readers always
//     see a consistent, fully-committed session state.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/kwtplay/logoquiz/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for quiz sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save registers a new session.
	Save(ctx context.Context, s *game.Session) error

	// Snapshot returns a consistent deep copy of a session.
	Snapshot(ctx context.Context, id string) (*game.Session, error)

	// Update runs fn against the live session under the store lock.
	// fn's error is returned as-is; the session keeps whatever state fn
	// left behind.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex             // guards sessions map and session state
	sessions map[string]*game.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

// Save adds or replaces the session in the map.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Snapshot looks up a session and returns a deep copy of it.
func (m *memory) Snapshot(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Snapshot(), nil
	}
	return nil, ErrNotFound
}

// Update applies fn to the live session while holding the write lock.
func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}
