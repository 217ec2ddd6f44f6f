package session

import (
	"context"
	"sync"
	"time"

	"github.com/csg33k/hrnet/internal/form"
)

type memoryEntry struct {
	snap    form.Snapshot
	expires time.Time
}

// MemoryBackend keeps snapshots in process. Entries untouched for longer
// than the TTL are treated as missing; a zero TTL keeps them forever.
type MemoryBackend struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Load(_ context.Context, id string) (form.Snapshot, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok {
		return form.Snapshot{}, false, nil
	}
	if b.expired(e) {
		delete(b.entries, id)
		return form.Snapshot{}, false, nil
	}
	return e.snap, true, nil
}

func (b *MemoryBackend) Save(_ context.Context, id string, s form.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := memoryEntry{snap: s}
	if b.ttl > 0 {
		e.expires = b.now().Add(b.ttl)
	}
	b.entries[id] = e
	return nil
}

// Sweep removes expired entries and returns how many were removed.
func (b *MemoryBackend) Sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for id, e := range b.entries {
		if b.expired(e) {
			delete(b.entries, id)
			n++
		}
	}
	return n
}

func (b *MemoryBackend) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !b.now().Before(e.expires)
}
