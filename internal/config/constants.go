// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "langfeed"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"

	DefaultReviewLimit    = 20
	DefaultDifficultyTier = 3 // 履歴が無いユーザーの開始ティア
	DefaultMaxTier        = 5
	DefaultBandMin        = 0.85 // 理解度バンド (既知語率がこの範囲なら学習効率が高い)
	DefaultBandMax        = 0.95
	DefaultCandidateLimit = 250
	DefaultQueueSize      = 50

	DefaultFeedQueueTTL     = time.Hour
	DefaultSRSQueueTTL      = time.Hour
	DefaultContentMetaTTL   = 2 * time.Hour
	DefaultCacheOpTimeout   = 200 * time.Millisecond
	DefaultCacheCleanupTick = 5 * time.Minute
)
