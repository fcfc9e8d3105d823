package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/benx421/atm-core/internal/models"
)

// MemoryIdempotencyStore keeps cached responses in memory. Entries older than
// the retention window are dropped on access.
type MemoryIdempotencyStore struct {
	mu        sync.RWMutex
	entries   map[string]*models.IdempotencyKey
	retention time.Duration
}

// NewMemoryIdempotencyStore creates a store with the given retention window.
// A non-positive retention keeps entries forever.
func NewMemoryIdempotencyStore(retention time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		entries:   make(map[string]*models.IdempotencyKey),
		retention: retention,
	}
}

func (s *MemoryIdempotencyStore) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	s.mu.RLock()
	entry, ok := s.entries[key+"|"+requestPath]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if s.retention > 0 && time.Since(entry.CreatedAt) > s.retention {
		s.mu.Lock()
		delete(s.entries, key+"|"+requestPath)
		s.mu.Unlock()
		return nil, nil
	}

	cp := *entry
	return &cp, nil
}

func (s *MemoryIdempotencyStore) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *idemKey
	s.entries[idemKey.Key+"|"+idemKey.RequestPath] = &cp
	return nil
}

var _ IdempotencyRepository = (*MemoryIdempotencyStore)(nil)
