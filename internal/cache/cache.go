// internal/cache/cache.go
package cache

import (
	"context"
	"time"

	"langfeed/internal/model"
)

// FeedCache はシーケンサが消費するキー/バリューキャッシュの契約です。
// 具体的なキャッシュ技術（Redis等）はこのインターフェースの背後に隠れます。
// キー空間: feed:{userID} / srs:{userID} / content:{contentID}
type FeedCache interface {
	// フィードキュー (ランキング済みコンテンツIDの列)
	SetQueue(ctx context.Context, userID string, ids []string, ttl time.Duration) error
	GetQueue(ctx context.Context, userID string) ([]string, bool, error)
	// PopQueue は exclude に含まれない先頭IDを原子的に取り出します。
	// 同一ユーザーの同時呼び出しが同じアイテムを返さないよう、
	// 実装は read-modify-write を1操作として行う必要があります。
	PopQueue(ctx context.Context, userID string, exclude map[string]struct{}) (string, bool, error)
	InvalidateQueue(ctx context.Context, userID string) error

	// SRSキュー (復習対象の語) — フィードキューとは別名前空間
	SetSRSQueue(ctx context.Context, userID string, words []string, ttl time.Duration) error
	GetSRSQueue(ctx context.Context, userID string) ([]string, bool, error)

	// コンテンツメタデータ
	SetContentMeta(ctx context.Context, contentID string, content *model.Content, ttl time.Duration) error
	GetContentMeta(ctx context.Context, contentID string) (*model.Content, bool, error)
}

const (
	feedKeyPrefix    = "feed:"
	srsKeyPrefix     = "srs:"
	contentKeyPrefix = "content:"
)
