package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() (*time.Time, func() time.Time) {
	current := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &current, func() time.Time { return current }
}

func TestQuery_HitWithinTTL(t *testing.T) {
	current, now := fixedClock()
	c := New(5*time.Minute, 8, now)

	c.Put("attendance:{}", []string{"a"})
	*current = current.Add(4*time.Minute + 59*time.Second)

	got, ok := c.Get("attendance:{}")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got)
}

func TestQuery_ExpiresAtTTL(t *testing.T) {
	current, now := fixedClock()
	c := New(5*time.Minute, 8, now)

	c.Put("attendance:{}", 1)
	*current = current.Add(5 * time.Minute)

	_, ok := c.Get("attendance:{}")
	assert.False(t, ok, "entry must be invalid once now - timestamp reaches the TTL")
	assert.Equal(t, 0, c.Len(), "stale entries are dropped on read")
}

func TestQuery_InvalidateByDomainPrefix(t *testing.T) {
	_, now := fixedClock()
	c := New(time.Minute, 8, now)

	c.Put("attendance:{}", 1)
	c.Put(`attendance:{"userId":"u1"}`, 2)
	c.Put("activities:{}", 3)

	removed := c.Invalidate("attendance:")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("attendance:{}")
	assert.False(t, ok)
	got, ok := c.Get("activities:{}")
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestQuery_Purge(t *testing.T) {
	c := New(time.Minute, 8, nil)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestQuery_EvictsLeastRecentlyUsed(t *testing.T) {
	_, now := fixedClock()
	c := New(time.Minute, 2, now)

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestQuery_Defaults(t *testing.T) {
	c := New(0, 0, nil)
	assert.Equal(t, DefaultTTL, c.ttl)
	for i := 0; i < defaultMaxEntries+10; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, defaultMaxEntries, c.Len())
}
