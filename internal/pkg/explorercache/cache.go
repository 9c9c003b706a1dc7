// Package explorercache holds the short-lived in-memory caches that back the
// file explorer: rendered directory listings and per-directory ETags. Entries
// expire after a fixed TTL and are dropped eagerly on writes under a path.
package explorercache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

// DefaultTTL bounds how stale a cached listing or ETag may be.
const DefaultTTL = 15 * time.Second

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL map keyed by strings that embed the directory path as their
// first colon-separated field, so invalidation by path works for composite
// listing keys and plain ETag keys alike.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a Cache with the given TTL; a non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if it exists and has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key for the cache's TTL.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops every entry whose path field equals the given path.
func (c *Cache) Invalidate(path string) {
	normalized := paths.Normalize(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if keyPath(key) == normalized {
			delete(c.entries, key)
		}
	}
}

// InvalidateRecursive drops entries for the path, every descendant of it, and
// every ancestor up to the root. Ancestors are included because a change deep
// in the tree alters the listing (and therefore the ETag) of each parent.
func (c *Cache) InvalidateRecursive(path string) {
	normalized := paths.Normalize(path)

	ancestors := make(map[string]struct{})
	for p := normalized; ; p = paths.ParentPath(p) {
		ancestors[p] = struct{}{}
		if p == "" {
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		kp := keyPath(key)
		if _, ok := ancestors[kp]; ok || isDescendant(normalized, kp) {
			delete(c.entries, key)
			removed++
		}
	}
	logger.Debug().Str("path", normalized).Int("removed", removed).Msg("Explorer cache invalidated recursively")
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func keyPath(key string) string {
	if idx := strings.Index(key, "::"); idx >= 0 {
		return key[:idx]
	}
	return key
}

func isDescendant(parent, candidate string) bool {
	if parent == "" {
		return candidate != ""
	}
	return strings.HasPrefix(candidate, parent+"/")
}

// ListingKey builds the composite key for a cached directory listing. The
// same directory cached for different users, pages or sort orders yields
// distinct entries.
func ListingKey(path, userKey string, page, pageSize int, sortBy, sortOrder string) string {
	var b strings.Builder
	b.WriteString(paths.Normalize(path))
	b.WriteString("::")
	b.WriteString(userKey)
	b.WriteString(":")
	b.WriteString(strconv.Itoa(page))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(pageSize))
	b.WriteString(":")
	b.WriteString(sortBy)
	b.WriteString(":")
	b.WriteString(sortOrder)
	return b.String()
}

// ETagKey builds the key for a cached directory ETag.
func ETagKey(path string) string {
	return paths.Normalize(path)
}
