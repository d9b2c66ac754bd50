package pagecraft

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = sql.ErrNoRows

// PageCache is an in-memory cache of published pages and library names
// with TTL. It backs the public read handlers; admin writes invalidate it.
type PageCache struct {
	mu        sync.RWMutex
	pages     []Page
	libraries []string
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.libraries = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	// Cache holds the full published set; per-library pagination goes
	// straight to the store.
	pages, err := c.store.ListPages("", 1, 1<<30)
	if err != nil {
		return err
	}
	libraries, err := c.store.ListLibraries()
	if err != nil {
		return err
	}
	c.pages = pages
	c.libraries = libraries
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached pages and libraries after ensuring the cache
// is fresh. It tries a read lock first; only takes a write lock if a reload
// is needed.
func (c *PageCache) ensureLoaded() ([]Page, []string, error) {
	c.mu.RLock()
	if c.valid() {
		pages, libraries := c.pages, c.libraries
		c.mu.RUnlock()
		return pages, libraries, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.pages, c.libraries, nil
}

// ListPages returns published pages, optionally filtered by library.
func (c *PageCache) ListPages(library string) ([]Page, error) {
	pages, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if library == "" {
		return pages, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(library))
	var filtered []Page
	for _, p := range pages {
		if strings.ToLower(p.Library) == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListLibraries returns the names of libraries with published pages.
func (c *PageCache) ListLibraries() ([]string, error) {
	_, libraries, err := c.ensureLoaded()
	return libraries, err
}

// GetPage returns a single published page by url slug from the cache.
func (c *PageCache) GetPage(url string) (Page, error) {
	pages, _, err := c.ensureLoaded()
	if err != nil {
		return Page{}, err
	}
	for _, p := range pages {
		if p.URL == url {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}
