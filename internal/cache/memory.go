// internal/cache/memory.go
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"langfeed/internal/model"
)

// entry は有効期限付きのキャッシュ項目です
type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// unavailable はキャッシュ操作の失敗を model.ErrCacheUnavailable として返します。
// 呼び出し側はこのセンチネルでフェイルオープンの判断をします。
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", model.ErrCacheUnavailable, err)
}

// Stats はキャッシュのヒット率等の統計です
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// MemoryCache は FeedCache のインメモリ実装です。
// 値はシリアライズして保持するため、呼び出し側とポインタを共有しません。
// PopQueue は書き込みロックを保持したまま read-modify-write を行います。
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stats   Stats

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemoryCache は掃除ゴルーチン付きのインメモリキャッシュを生成します。
// 使い終わったら Stop を呼んでください。
func NewMemoryCache(cleanupTick time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]entry),
		stopCh:  make(chan struct{}),
	}
	if cleanupTick > 0 {
		go c.cleanupLoop(cleanupTick)
	}
	return c
}

func (c *MemoryCache) cleanupLoop(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
	}
}

// Stop は掃除ゴルーチンを停止します
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Stats は統計のスナップショットを返します
func (c *MemoryCache) Snapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *MemoryCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *MemoryCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, unavailable(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return false, nil
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.Misses++
		return false, nil
	}
	c.stats.Hits++
	return true, json.Unmarshal(e.data, dst)
}

func (c *MemoryCache) delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) SetQueue(ctx context.Context, userID string, ids []string, ttl time.Duration) error {
	return c.set(ctx, feedKeyPrefix+userID, ids, ttl)
}

func (c *MemoryCache) GetQueue(ctx context.Context, userID string) ([]string, bool, error) {
	var ids []string
	ok, err := c.get(ctx, feedKeyPrefix+userID, &ids)
	if err != nil || !ok {
		return nil, false, err
	}
	return ids, true, nil
}

func (c *MemoryCache) PopQueue(ctx context.Context, userID string, exclude map[string]struct{}) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, unavailable(err)
	}
	key := feedKeyPrefix + userID

	// 取り出しと残りの書き戻しをロック内で完結させる
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.expired(time.Now()) {
		if ok {
			delete(c.entries, key)
			c.stats.Evictions++
		}
		c.stats.Misses++
		return "", false, nil
	}

	var ids []string
	if err := json.Unmarshal(e.data, &ids); err != nil {
		delete(c.entries, key)
		return "", false, err
	}

	for i, id := range ids {
		if _, skip := exclude[id]; skip {
			continue
		}
		rest := ids[i+1:]
		if len(rest) == 0 {
			delete(c.entries, key)
		} else {
			data, err := json.Marshal(rest)
			if err != nil {
				return "", false, err
			}
			c.entries[key] = entry{data: data, expiresAt: e.expiresAt}
		}
		c.stats.Hits++
		return id, true, nil
	}

	// 除外で全滅したキューは破棄して再計算させる
	delete(c.entries, key)
	c.stats.Misses++
	return "", false, nil
}

func (c *MemoryCache) InvalidateQueue(ctx context.Context, userID string) error {
	return c.delete(ctx, feedKeyPrefix+userID)
}

func (c *MemoryCache) SetSRSQueue(ctx context.Context, userID string, words []string, ttl time.Duration) error {
	return c.set(ctx, srsKeyPrefix+userID, words, ttl)
}

func (c *MemoryCache) GetSRSQueue(ctx context.Context, userID string) ([]string, bool, error) {
	var words []string
	ok, err := c.get(ctx, srsKeyPrefix+userID, &words)
	if err != nil || !ok {
		return nil, false, err
	}
	return words, true, nil
}

func (c *MemoryCache) SetContentMeta(ctx context.Context, contentID string, content *model.Content, ttl time.Duration) error {
	return c.set(ctx, contentKeyPrefix+contentID, content, ttl)
}

func (c *MemoryCache) GetContentMeta(ctx context.Context, contentID string) (*model.Content, bool, error) {
	var content model.Content
	ok, err := c.get(ctx, contentKeyPrefix+contentID, &content)
	if err != nil || !ok {
		return nil, false, err
	}
	return &content, true, nil
}
