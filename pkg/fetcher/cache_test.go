package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpulse/pkg/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		cache := NewMemoryCache()
		items, ok := cache.Get(ctx, "nope")
		assert.False(t, ok)
		assert.Nil(t, items)
	})

	t.Run("set then get", func(t *testing.T) {
		cache := NewMemoryCache()
		stored := []domain.Item{{Source: "TechBlog", Title: "hello", URL: "https://example.com/1"}}
		cache.Set(ctx, "TechBlog", stored, time.Minute)

		items, ok := cache.Get(ctx, "TechBlog")
		require.True(t, ok)
		assert.Equal(t, stored, items)
	})

	t.Run("empty list is cacheable", func(t *testing.T) {
		cache := NewMemoryCache()
		cache.Set(ctx, "quiet-source", []domain.Item{}, time.Minute)

		items, ok := cache.Get(ctx, "quiet-source")
		require.True(t, ok)
		assert.Empty(t, items)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		cache := NewMemoryCache()
		cache.nowFn = func() time.Time { return now }

		cache.Set(ctx, "TechBlog", []domain.Item{{Title: "old"}}, time.Hour)

		now = now.Add(time.Hour + time.Second)
		items, ok := cache.Get(ctx, "TechBlog")
		assert.False(t, ok)
		assert.Nil(t, items)

		// the expired entry is gone for good
		now = now.Add(-time.Hour)
		_, ok = cache.Get(ctx, "TechBlog")
		assert.False(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		cache := NewMemoryCache()
		cache.Set(ctx, "a", []domain.Item{{Title: "a1"}}, time.Minute)
		cache.Set(ctx, "b", []domain.Item{{Title: "b1"}}, time.Minute)

		itemsA, ok := cache.Get(ctx, "a")
		require.True(t, ok)
		itemsB, ok := cache.Get(ctx, "b")
		require.True(t, ok)
		assert.Equal(t, "a1", itemsA[0].Title)
		assert.Equal(t, "b1", itemsB[0].Title)
	})
}
