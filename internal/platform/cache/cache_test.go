package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTL_GetSet(t *testing.T) {
	c := New[int](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTL_ExpiresOnRead(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New[string](30 * time.Second)
	c.now = func() time.Time { return now }

	c.Set("org-1", "balances")
	assert.Equal(t, 1, c.Len())

	now = now.Add(29 * time.Second)
	v, ok := c.Get("org-1")
	assert.True(t, ok)
	assert.Equal(t, "balances", v)

	now = now.Add(time.Second)
	_, ok = c.Get("org-1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestTTL_DisabledWithZeroTTL(t *testing.T) {
	c := New[int](0)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTL_InstancesAreIndependent(t *testing.T) {
	a := New[int](time.Minute)
	b := New[int](time.Minute)
	a.Set("k", 1)
	_, ok := b.Get("k")
	assert.False(t, ok)
}

func TestTTL_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("k", i)
			c.Get("k")
			if i%10 == 0 {
				c.Delete("k")
			}
		}(i)
	}
	wg.Wait()
}

func TestTTL_SetIfVersionDropsLoadThatRacedDelete(t *testing.T) {
	c := New[string](time.Minute)

	v := c.Version("org")
	c.Delete("org")
	assert.False(t, c.SetIfVersion("org", "stale", v))
	_, ok := c.Get("org")
	assert.False(t, ok, "stale load must not be cached")

	v = c.Version("org")
	assert.True(t, c.SetIfVersion("org", "fresh", v))
	got, ok := c.Get("org")
	assert.True(t, ok)
	assert.Equal(t, "fresh", got)
}

func TestTTL_VersionIsPerKey(t *testing.T) {
	c := New[int](time.Minute)
	v := c.Version("a")
	c.Delete("b")
	assert.Equal(t, v, c.Version("a"))
	assert.True(t, c.SetIfVersion("a", 1, v))
}
