// internal/model/feed.go
package model

// Feedback は直前アイテムへの明示フィードバックです
type Feedback string

const (
	FeedbackLiked     Feedback = "liked"
	FeedbackDisliked  Feedback = "disliked"
	FeedbackSkipped   Feedback = "skipped"
	FeedbackCompleted Feedback = "completed"
)

// Harder はフィードバックが難易度を上げる方向かどうかを返します
func (f Feedback) Harder() bool {
	return f == FeedbackLiked || f == FeedbackCompleted
}

// Easier はフィードバックが難易度を下げる方向かどうかを返します
func (f Feedback) Easier() bool {
	return f == FeedbackDisliked || f == FeedbackSkipped
}

// NextFeedRequest は「次のアイテム」取得リクエストのDTO。
// 呼び出しごとに構築され、永続化はしません。
type NextFeedRequest struct {
	UserID           string   `json:"user_id" validate:"required"`
	CurrentContentID string   `json:"current_content_id,omitempty"`
	Feedback         Feedback `json:"feedback,omitempty" validate:"omitempty,oneof=liked disliked skipped completed"`
	ExcludeIDs       []string `json:"exclude_ids,omitempty"`
	UseCache         *bool    `json:"use_cache,omitempty"` // 省略時は true
}

// CacheEnabled は UseCache の省略時デフォルト(true)を適用した値を返します
func (r *NextFeedRequest) CacheEnabled() bool {
	return r.UseCache == nil || *r.UseCache
}

// ExcludeSet は除外IDと現在表示中IDをまとめたセットを返します
func (r *NextFeedRequest) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.ExcludeIDs)+1)
	for _, id := range r.ExcludeIDs {
		set[id] = struct{}{}
	}
	if r.CurrentContentID != "" {
		set[r.CurrentContentID] = struct{}{}
	}
	return set
}

// FeedContext は選択時のシーケンサ内部状態（デバッグ・クライアント表示用）
type FeedContext struct {
	TargetDifficultyTier int     `json:"target_difficulty_tier"`
	LearningPathID       *string `json:"learning_path_id,omitempty"`
	FromCache            bool    `json:"from_cache"`
}

// NextFeedResponse は「次のアイテム」レスポンスのDTO。
// パーソナライズ候補が無かった場合は Fallback が true になります。
type NextFeedResponse struct {
	Item     *Content    `json:"item"`
	Fallback bool        `json:"fallback"`
	Context  FeedContext `json:"context"`
}
