// Package cache implements the per-view paginated list cache: an in-memory
// map from page number to the page already fetched from the server, with
// eager prefetch of adjacent pages.
//
// The cache is deliberately never invalidated by mutations and never
// evicts; its capacity is bounded only by how many distinct pages a user
// visits in the lifetime of the owning view. Staleness of counts and flags
// inside a cached page is an accepted tradeoff.
package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/virtual-arena/arena-cli/internal/client/models"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// FetchFunc loads one page from the server. Page numbers are 1-based but
// are forwarded unvalidated: a request for page 0 or below reaches the
// server and the server's behavior governs the result.
type FetchFunc[T any] func(ctx context.Context, page int) (models.ListPage[T], error)

// PageCache caches list pages for a single view instance.
//
// Concurrent Get calls for the same uncached page are not deduplicated:
// both hit the network and the later response overwrites the earlier slot.
// Both represent the same logical page, so this costs only wasted work.
type PageCache[T any] struct {
	fetch FetchFunc[T]
	idOf  func(T) string
	log   logging.Logger

	mu         sync.Mutex
	pages      map[int][]T
	totalPages int

	prefetches sync.WaitGroup
}

// New builds a PageCache over fetch. idOf extracts an entity id, used by
// Patch to propagate updates into cached pages.
func New[T any](fetch FetchFunc[T], idOf func(T) string, log logging.Logger) *PageCache[T] {
	return &PageCache[T]{
		fetch: fetch,
		idOf:  idOf,
		log:   log,
		pages: make(map[int][]T),
	}
}

// Get returns page n, from cache when present and from the server
// otherwise, then schedules a background prefetch of the adjacent pages.
// A cache hit issues no network call.
func (c *PageCache[T]) Get(ctx context.Context, n int) (models.ListPage[T], error) {
	c.mu.Lock()
	if items, ok := c.pages[n]; ok {
		total := c.totalPages
		c.mu.Unlock()
		c.prefetchNeighbors(ctx, n)
		return models.ListPage[T]{Items: items, TotalPages: total}, nil
	}
	c.mu.Unlock()

	page, err := c.fetch(ctx, n)
	if err != nil {
		return models.ListPage[T]{}, err
	}

	c.mu.Lock()
	c.pages[n] = page.Items
	c.totalPages = page.TotalPages
	c.mu.Unlock()

	c.prefetchNeighbors(ctx, n)
	return page, nil
}

// prefetchNeighbors kicks off an unordered background batch for n-1 and n+1
// where in range and not already cached. Failures are logged and swallowed;
// a prefetch miss just means the next Get falls back to a synchronous fetch.
func (c *PageCache[T]) prefetchNeighbors(ctx context.Context, n int) {
	c.mu.Lock()
	total := c.totalPages
	var targets []int
	if n > 1 {
		if _, ok := c.pages[n-1]; !ok {
			targets = append(targets, n-1)
		}
	}
	if n < total {
		if _, ok := c.pages[n+1]; !ok {
			targets = append(targets, n+1)
		}
	}
	c.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	// Prefetches outlive the Get that scheduled them.
	bg := context.WithoutCancel(ctx)

	c.prefetches.Add(1)
	go func() {
		defer c.prefetches.Done()
		var g errgroup.Group
		for _, page := range targets {
			page := page
			g.Go(func() error {
				got, err := c.fetch(bg, page)
				if err != nil {
					c.log.Warn(bg, "prefetch failed", "page", page, "error", err)
					return nil
				}
				c.mu.Lock()
				c.pages[page] = got.Items
				c.totalPages = got.TotalPages
				c.mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Patch replaces the entry matching updated's id in every cached page that
// contains it. This is the only write mutations perform against the cache;
// everything else stays as fetched.
func (c *PageCache[T]) Patch(updated T) {
	id := c.idOf(updated)
	c.mu.Lock()
	defer c.mu.Unlock()
	for n, items := range c.pages {
		for i, item := range items {
			if c.idOf(item) == id {
				replaced := make([]T, len(items))
				copy(replaced, items)
				replaced[i] = updated
				c.pages[n] = replaced
			}
		}
	}
}

// TotalPages returns the total page count known at the last fetch.
func (c *PageCache[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Contains reports whether page n is cached.
func (c *PageCache[T]) Contains(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pages[n]
	return ok
}

// Wait blocks until all scheduled prefetch batches have settled. The view
// layer calls it on teardown; tests use it to observe prefetch results
// deterministically.
func (c *PageCache[T]) Wait() {
	c.prefetches.Wait()
}
