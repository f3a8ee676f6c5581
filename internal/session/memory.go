package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the fallback used when Redis is unreachable: a
// mutex-guarded map with per-entry expiry.  Sessions held here do not
// survive a restart and are not shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time // overridable in tests
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// NewMemoryStore returns an empty MemoryStore with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sess.Token] = memoryEntry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		// Lazy expiry: drop the entry on first access past its deadline.
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return Session{}, ErrNotFound
	}
	return e.sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryStore) DeleteAllForUser(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, e := range s.entries {
		if e.sess.UserID == userID {
			delete(s.entries, token)
		}
	}
	return nil
}
