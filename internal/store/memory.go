// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral by design: state is lost when the process restarts.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Map access guarded by an RWMutex; each session additionally has its own
//     mutex so exactly one command runs against a session at a time.
//   - Idle sessions (no View/Update for ttl) are evicted by Expire.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/docdle/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the access interface for live game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Update runs fn with exclusive access to the session.
	// fn's error is returned as is.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete drops a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Expire evicts sessions idle since before now-ttl and reports how many.
	Expire(now time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu       sync.Mutex
	sess     *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by Session.ID
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), ttl: ttl, now: now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{sess: s, lastSeen: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = m.now()
	return fn(e.sess)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Expire(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
