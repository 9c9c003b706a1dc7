package explorercache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(ttl time.Duration) (*Cache, *time.Time) {
	c := New(ttl)
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }
	return c, &current
}

func TestGetPutAndExpiry(t *testing.T) {
	c, current := newTestCache(10 * time.Second)

	c.Put("2024-2025", "etag-1")

	got, ok := c.Get("2024-2025")
	require.True(t, ok)
	assert.Equal(t, "etag-1", got)

	*current = current.Add(11 * time.Second)

	_, ok = c.Get("2024-2025")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestNewFallsBackToDefaultTTL(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestInvalidateMatchesExactPathOnly(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put(ETagKey("2024-2025/FIRST"), "a")
	c.Put(ListingKey("2024-2025/FIRST", "7", 1, 20, "name", "asc"), "listing")
	c.Put(ETagKey("2024-2025/FIRST/prof_7"), "b")

	c.Invalidate("/2024-2025/FIRST/")

	_, ok := c.Get(ETagKey("2024-2025/FIRST"))
	assert.False(t, ok)
	_, ok = c.Get(ListingKey("2024-2025/FIRST", "7", 1, 20, "name", "asc"))
	assert.False(t, ok)
	_, ok = c.Get(ETagKey("2024-2025/FIRST/prof_7"))
	assert.True(t, ok, "child entries survive a non-recursive invalidation")
}

func TestInvalidateRecursiveDropsAncestorsAndDescendants(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put(ETagKey(""), "root")
	c.Put(ETagKey("2024-2025"), "year")
	c.Put(ETagKey("2024-2025/FIRST"), "semester")
	c.Put(ETagKey("2024-2025/FIRST/prof_7"), "professor")
	c.Put(ETagKey("2024-2025/FIRST/prof_7/CS101/Exams"), "deep")
	c.Put(ETagKey("2024-2025/SECOND"), "sibling")
	c.Put(ETagKey("2023-2024"), "other-year")

	c.InvalidateRecursive("2024-2025/FIRST")

	for _, gone := range []string{
		"",
		"2024-2025",
		"2024-2025/FIRST",
		"2024-2025/FIRST/prof_7",
		"2024-2025/FIRST/prof_7/CS101/Exams",
	} {
		_, ok := c.Get(ETagKey(gone))
		assert.False(t, ok, gone)
	}

	_, ok := c.Get(ETagKey("2024-2025/SECOND"))
	assert.True(t, ok, "sibling semester is untouched")
	_, ok = c.Get(ETagKey("2023-2024"))
	assert.True(t, ok, "unrelated year is untouched")
}

func TestInvalidateRecursiveAtRootClearsEverything(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put(ETagKey("2024-2025"), "a")
	c.Put(ETagKey("2023-2024/SUMMER"), "b")
	c.Put(ETagKey(""), "root")

	c.InvalidateRecursive("")

	assert.Equal(t, 0, c.Len())
}

func TestListingKeyDistinguishesUserAndPaging(t *testing.T) {
	base := ListingKey("2024-2025/FIRST", "7", 1, 20, "name", "asc")

	assert.NotEqual(t, base, ListingKey("2024-2025/FIRST", "8", 1, 20, "name", "asc"))
	assert.NotEqual(t, base, ListingKey("2024-2025/FIRST", "7", 2, 20, "name", "asc"))
	assert.NotEqual(t, base, ListingKey("2024-2025/FIRST", "7", 1, 20, "size", "desc"))
	assert.Equal(t, base, ListingKey("/2024-2025/FIRST/", "7", 1, 20, "name", "asc"),
		"path normalization makes equivalent paths share a key")
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
