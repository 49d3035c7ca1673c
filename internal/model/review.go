// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DueReviewWord は復習キュー1件分のレスポンスDTO
type DueReviewWord struct {
	WordID       uuid.UUID  `json:"word_id"`
	Word         string     `json:"word"`
	Translation  string     `json:"translation"` // 正解表示用に含める
	Level        string     `json:"level"`
	MasteryLevel int        `json:"mastery_level"`
	NextReview   *time.Time `json:"next_review"`
	ReviewCount  int        `json:"review_count"`
}

// DueReviewsResponse は復習キューのレスポンスDTO
type DueReviewsResponse struct {
	Words   []*DueReviewWord `json:"words"`
	Count   int              `json:"count"`
	HasMore bool             `json:"has_more"`
}

// DueReviewCountResponse は count_only=true 用のレスポンスDTO
type DueReviewCountResponse struct {
	Count int64 `json:"count"`
}

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	IsCorrect *bool  `json:"is_correct" validate:"required"`
	LatencyMS int64  `json:"latency_ms,omitempty" validate:"omitempty,gte=0"`
}
