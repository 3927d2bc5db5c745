// Package cache holds the directory listings the UI renders from and
// implements the optimistic mutation strategy: apply a local transform
// immediately for perceived responsiveness, or revalidate against the
// server when authoritative state is required.
package cache

import (
	"context"
	"sync"
	"time"

	"lazyfm/internal/models"
)

// Fetcher loads the authoritative listing of a directory from the backend.
type Fetcher func(ctx context.Context, dir string) ([]models.FileEntry, error)

// Transform produces a new listing from the cached one. It receives a copy
// and may return it modified.
type Transform func(entries []models.FileEntry) []models.FileEntry

// Cache stores one listing per directory. All methods are safe for
// concurrent use; updates to one directory are serialized by the cache
// lock.
type Cache struct {
	mu       sync.RWMutex
	fetch    Fetcher
	listings map[string]*models.Listing
}

// New creates an empty cache backed by fetch.
func New(fetch Fetcher) *Cache {
	return &Cache{
		fetch:    fetch,
		listings: make(map[string]*models.Listing),
	}
}

// Get returns the cached entries for dir, if present. The returned slice is
// a copy; callers may not observe later mutations through it.
func (c *Cache) Get(dir string) ([]models.FileEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.listings[dir]
	if !ok {
		return nil, false
	}
	return cloneEntries(l.Entries), true
}

// Revalidate fetches the authoritative listing for dir, stores it, and
// returns it. On fetch error the cached listing is left untouched.
func (c *Cache) Revalidate(ctx context.Context, dir string) ([]models.FileEntry, error) {
	entries, err := c.fetch(ctx, dir)
	if err != nil {
		return nil, err
	}
	models.SortEntries(entries)

	c.mu.Lock()
	c.listings[dir] = &models.Listing{
		Dir:       dir,
		Entries:   entries,
		FetchedAt: time.Now(),
	}
	c.mu.Unlock()
	return cloneEntries(entries), nil
}

// Mutate reconciles the cached listing for dir. When transform is non-nil
// it is applied to the cached entries immediately, before any network
// round-trip. When revalidate is true the authoritative listing is fetched
// afterwards and replaces the local result.
//
// The returned entries reflect whatever state the cache holds when Mutate
// returns: the transformed listing for a pure optimistic update, or the
// server's listing after a revalidation.
func (c *Cache) Mutate(ctx context.Context, dir string, transform Transform, revalidate bool) ([]models.FileEntry, error) {
	if transform != nil {
		c.mu.Lock()
		if l, ok := c.listings[dir]; ok {
			l.Entries = transform(cloneEntries(l.Entries))
		}
		c.mu.Unlock()
	}

	if revalidate {
		return c.Revalidate(ctx, dir)
	}

	entries, _ := c.Get(dir)
	return entries, nil
}

// Invalidate drops the cached listing for dir.
func (c *Cache) Invalidate(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listings, dir)
}

func cloneEntries(entries []models.FileEntry) []models.FileEntry {
	out := make([]models.FileEntry, len(entries))
	copy(out, entries)
	return out
}
