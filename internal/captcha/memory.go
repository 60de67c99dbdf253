package captcha

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	answer    string
	expiresAt time.Time
}

// MemoryStore is a bounded in-process challenge store. Expired entries are
// swept lazily when the store fills up, so memory stays proportional to the
// capacity rather than to traffic volume.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]entry
	capacity int

	now func() time.Time
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 10000
	}
	return &MemoryStore{
		entries:  make(map[string]entry),
		capacity: capacity,
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, id, answer string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.entries) >= s.capacity {
		s.sweep(now)
	}
	// Still full after sweeping: evict one entry so new challenges keep
	// working under a flood of unanswered ones.
	if len(s.entries) >= s.capacity {
		for k := range s.entries {
			delete(s.entries, k)
			break
		}
	}

	s.entries[id] = entry{answer: answer, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, id)

	if s.now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.answer, true, nil
}

// sweep removes expired entries. Caller must hold the lock.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
