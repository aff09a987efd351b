package session

import (
	"sync"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// Store is the ephemeral transcript store: it owns every live session, keyed
// by session id. Sessions are created when a side is chosen and removed (or
// simply left to be dropped with the store) after completion.
type Store struct {
	mu       sync.RWMutex
	sessions map[ID]*Session
	clock    Clock
	ids      IDSource
}

// NewStore creates a transcript store. A nil clock or id source falls back to
// the system clock and the timestamp id source.
func NewStore(clock Clock, ids IDSource) *Store {
	if clock == nil {
		clock = SystemClock
	}
	if ids == nil {
		ids = NewIDSource(clock)
	}
	return &Store{
		sessions: make(map[ID]*Session),
		clock:    clock,
		ids:      ids,
	}
}

// Create registers a new session in the Configuring phase holding the given
// configuration. Validation happens on Start, not here.
func (s *Store) Create(cfg models.DebateConfig) *Session {
	sess := newSession(s.ids.NewID(), cfg, s.clock)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// Get retrieves a live session. Returns ErrSessionNotFound for unknown ids.
func (s *Store) Get(id ID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove drops a session from the store. Removing an unknown id is a no-op.
func (s *Store) Remove(id ID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
