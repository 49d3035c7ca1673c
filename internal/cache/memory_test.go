// internal/cache/memory_test.go
package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"langfeed/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(0) // テストでは掃除ゴルーチン不要
	t.Cleanup(c.Stop)
	return c
}

func TestMemoryCache_QueueRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a", "b", "c"}, time.Hour))

	ids, ok, err := c.GetQueue(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	// 別ユーザーのキューとは干渉しない
	_, ok, err = c.GetQueue(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.GetQueue(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	stats := c.Snapshot()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestMemoryCache_PopQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 先頭から順に取り出す", func(t *testing.T) {
		c := newTestCache(t)
		require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a", "b"}, time.Hour))

		id, ok, err := c.PopQueue(ctx, "user-1", nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "a", id)

		id, ok, err = c.PopQueue(ctx, "user-1", nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "b", id)

		// 空になったキューはミス
		_, ok, err = c.PopQueue(ctx, "user-1", nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("正常系: 除外IDをスキップする", func(t *testing.T) {
		c := newTestCache(t)
		require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a", "b", "c"}, time.Hour))

		exclude := map[string]struct{}{"a": {}, "b": {}}
		id, ok, err := c.PopQueue(ctx, "user-1", exclude)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "c", id)
	})

	t.Run("正常系: 全件除外ならキューを破棄してミス", func(t *testing.T) {
		c := newTestCache(t)
		require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a", "b"}, time.Hour))

		exclude := map[string]struct{}{"a": {}, "b": {}}
		_, ok, err := c.PopQueue(ctx, "user-1", exclude)
		require.NoError(t, err)
		assert.False(t, ok)

		// 破棄済みなので再取得もミス
		_, ok, err = c.GetQueue(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("正常系: 並行Popで同じIDは二度返らない", func(t *testing.T) {
		c := newTestCache(t)
		ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		require.NoError(t, c.SetQueue(ctx, "user-1", ids, time.Hour))

		var mu sync.Mutex
		seen := make(map[string]int)
		var wg sync.WaitGroup
		for i := 0; i < len(ids); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, ok, err := c.PopQueue(ctx, "user-1", nil)
				if err != nil || !ok {
					return
				}
				mu.Lock()
				seen[id]++
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, len(ids))
		for id, n := range seen {
			assert.Equal(t, 1, n, "id %s popped more than once", id)
		}
	})
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	c := newTestCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// キャンセル済みコンテキストでは読み書きとも ErrCacheUnavailable を返し、書き込みは起きない
	err := c.SetQueue(ctx, "user-1", []string{"a"}, time.Hour)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCacheUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = c.GetQueue(ctx, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCacheUnavailable)

	_, _, err = c.PopQueue(ctx, "user-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCacheUnavailable)

	_, ok, getErr := c.GetQueue(context.Background(), "user-1")
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestMemoryCache_SRSQueueNamespace(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	// 同じユーザーIDでもフィードキューとSRSキューは別名前空間
	require.NoError(t, c.SetQueue(ctx, "user-1", []string{"content-1"}, time.Hour))
	require.NoError(t, c.SetSRSQueue(ctx, "user-1", []string{"mercado"}, time.Hour))

	words, ok, err := c.GetSRSQueue(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"mercado"}, words)

	ids, ok, err := c.GetQueue(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"content-1"}, ids)
}

func TestMemoryCache_ContentMeta(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	original := &model.Content{
		ContentID:            "c-1",
		Type:                 model.ContentTypeVideo,
		Title:                "Un día en el mercado",
		KnownWordsPercentage: 0.92,
		DifficultyTier:       2,
		NewWords:             model.StringList{"mercado"},
	}
	require.NoError(t, c.SetContentMeta(ctx, "c-1", original, time.Hour))

	got, ok, err := c.GetContentMeta(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, original.ContentID, got.ContentID)
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.NewWords, got.NewWords)

	// シリアライズ保持なので呼び出し側とポインタを共有しない
	got.Title = "mutated"
	again, ok, err := c.GetContentMeta(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Un día en el mercado", again.Title)
}

func TestMemoryCache_InvalidateQueue(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a"}, time.Hour))
	require.NoError(t, c.InvalidateQueue(ctx, "user-1"))

	_, ok, err := c.GetQueue(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_StatsSnapshot(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.SetQueue(ctx, "user-1", []string{"a"}, time.Hour))

	_, _, _ = c.GetQueue(ctx, "user-1") // hit
	_, _, _ = c.GetQueue(ctx, "user-2") // miss

	stats := c.Snapshot()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
