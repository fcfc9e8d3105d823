package session

import (
	"context"
	"sync"
	"time"

	"github.com/benx421/atm-core/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is the default in-process session store.
//
// Expiry is lazy: expired sessions are dropped when a read encounters them.
// StartSweeper adds a background reclamation pass for long-running processes
// where abandoned sessions would otherwise accumulate.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	ttl      time.Duration

	now func() time.Time // replaceable in tests
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore whose sessions live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create allocates a new unauthenticated session for the card.
func (s *MemoryStore) Create(_ context.Context, card models.CardData) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := models.Session{
		ID:        uuid.NewString(),
		Card:      card,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.ID] = sess

	return sess.ID, nil
}

// GetIfValid returns the session if it exists and has not expired. Expired
// sessions are evicted on the spot.
func (s *MemoryStore) GetIfValid(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, sessionID)
		return nil, models.ErrSessionNotFound
	}

	// Copy so callers never share the stored record.
	out := sess
	return &out, nil
}

// Save overwrites the stored session record.
func (s *MemoryStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session

	return nil
}

// StartSweeper launches a background goroutine that evicts expired sessions
// every interval. The returned function stops it.
func (s *MemoryStore) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
		}
	}
}
