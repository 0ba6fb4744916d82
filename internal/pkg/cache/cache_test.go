package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("overview:org-1:2025-08", 42)

	got, ok := c.Get("overview:org-1:2025-08")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = c.Get("overview:org-1:2025-07")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("overview:org-1:2025-08", "stale")
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("overview:org-1:2025-08")
	assert.False(t, ok, "expired entry must not be returned")
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := New(time.Minute)

	c.Set(Key("overview", "org-1", "2025-08"), 1)
	c.Set(Key("overview", "org-1", "2025-07"), 2)
	c.Set(Key("quarterly", "org-1", "2025-08"), 3)
	c.Set(Key("overview", "org-2", "2025-08"), 4)

	removed := c.InvalidatePrefix("overview:org-1")
	assert.Equal(t, 2, removed)

	_, ok := c.Get(Key("overview", "org-1", "2025-08"))
	assert.False(t, ok)
	_, ok = c.Get(Key("quarterly", "org-1", "2025-08"))
	assert.True(t, ok)
	_, ok = c.Get(Key("overview", "org-2", "2025-08"))
	assert.True(t, ok, "other organizations' entries must survive")
}

func TestCache_Sweep(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	removed := c.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
}
