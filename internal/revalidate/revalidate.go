// Package revalidate tracks which rendered paths are stale after a write.
package revalidate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Signaler is told that data rendered for path is stale.
type Signaler interface {
	Revalidate(ctx context.Context, path string)
}

// Entry is the invalidation state of one path.
type Entry struct {
	Version uint64
	At      time.Time
}

// Registry bumps a per-path version on every signal. Readers of a path put
// the version in their responses so clients can tell when to refetch.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

func (r *Registry) Revalidate(ctx context.Context, path string) {
	r.mu.Lock()
	e := r.entries[path]
	e.Version++
	e.At = r.now()
	r.entries[path] = e
	r.mu.Unlock()

	slog.InfoContext(ctx, "revalidated path", "path", path, "version", e.Version)
}

// Get returns the entry for path; the zero Entry means never invalidated.
func (r *Registry) Get(path string) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.entries[path]
}
