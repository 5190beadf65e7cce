package handoff

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is the in-process fallback used when no MongoDB URI is
// configured. Entries older than the TTL are treated as gone.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryRepository creates an in-memory handoff store.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores the entry, evicting anything already expired on the way.
func (r *MemoryRepository) Put(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	for key, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(r.entries, key)
		}
	}

	r.entries[entry.Key] = entry
	return nil
}

// Take removes and returns the entry for key, or ErrNotFound.
func (r *MemoryRepository) Take(_ context.Context, key string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.entries, key)

	if entry.CreatedAt.Before(r.now().Add(-r.ttl)) {
		return nil, ErrNotFound
	}
	return &entry, nil
}
