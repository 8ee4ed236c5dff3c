package feed

import (
	"sync"
	"time"
)

type cachedPage struct {
	page     Page
	storedAt time.Time
}

// PageCache is an in-memory read-through cache for composed global-feed
// pages, keyed by page number. Invalidation is coarse: every post write
// clears the whole region, since an insertion shifts every page boundary.
// The TTL is only a backstop for writes that bypass the invalidation hooks.
type PageCache struct {
	mu    sync.RWMutex
	pages map[int]cachedPage
	ttl   time.Duration
}

// NewPageCache creates a PageCache with the given best-effort expiry.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		pages: make(map[int]cachedPage),
		ttl:   ttl,
	}
}

// Get returns the cached page and true if present and fresh.
func (c *PageCache) Get(page int) (Page, bool) {
	c.mu.RLock()
	entry, ok := c.pages[page]
	c.mu.RUnlock()
	if !ok {
		return Page{}, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		// stale
		c.mu.Lock()
		delete(c.pages, page)
		c.mu.Unlock()
		return Page{}, false
	}
	return entry.page, true
}

// Set stores a freshly composed page.
func (c *PageCache) Set(page int, p Page) {
	c.mu.Lock()
	c.pages[page] = cachedPage{page: p, storedAt: time.Now()}
	c.mu.Unlock()
}

// InvalidateAll drops every cached page. Called after a post write commits,
// never before, so a concurrent reader cannot repopulate stale data.
func (c *PageCache) InvalidateAll() {
	c.mu.Lock()
	c.pages = make(map[int]cachedPage)
	c.mu.Unlock()
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
