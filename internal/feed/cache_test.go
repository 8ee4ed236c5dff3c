package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageCacheHitAndMiss(t *testing.T) {
	cache := NewPageCache(time.Minute)

	_, ok := cache.Get(1)
	assert.False(t, ok)

	want := Page{Number: 1, TotalItems: 3}
	cache.Set(1, want)

	got, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = cache.Get(2)
	assert.False(t, ok)
}

func TestPageCacheTTLExpiry(t *testing.T) {
	cache := NewPageCache(10 * time.Millisecond)
	cache.Set(1, Page{Number: 1})

	_, ok := cache.Get(1)
	assert.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = cache.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestPageCacheInvalidateAll(t *testing.T) {
	cache := NewPageCache(time.Minute)
	cache.Set(1, Page{Number: 1})
	cache.Set(2, Page{Number: 2})
	assert.Equal(t, 2, cache.Len())

	cache.InvalidateAll()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get(1)
	assert.False(t, ok)
}
