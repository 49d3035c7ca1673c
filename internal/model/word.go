// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Word はユーザーごとの語彙レコードを表します。
// (user_id, word) で一意。クリックで作成され、保存(saved)で復習キューに入ります。
type Word struct {
	WordID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	UserID      string    `gorm:"not null;index:idx_user_word,unique" json:"user_id"`
	Word        string    `gorm:"not null;index:idx_user_word,unique" json:"word"` // 小文字・トリム済みで保存する
	Translation string    `gorm:"not null" json:"translation"`
	Context     string    `json:"context,omitempty"`
	Source      string    `json:"source,omitempty"`    // article / video など
	SourceID    string    `json:"source_id,omitempty"` // 出現したコンテンツのID
	Level       string    `gorm:"not null;default:A2" json:"level"` // CEFRタグ (A1〜C2)

	ClickCount   int        `gorm:"not null;default:1" json:"click_count"` // 減少しない
	Saved        bool       `gorm:"not null;default:false" json:"saved"`
	MasteryLevel int        `gorm:"not null;default:0" json:"mastery_level"`
	NextReview   *time.Time `gorm:"index" json:"next_review"` // nil = 即時レビュー対象
	ReviewCount  int        `gorm:"not null;default:0" json:"review_count"`
	LastSeen     time.Time  `gorm:"not null" json:"last_seen"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Word) TableName() string {
	return "words"
}

// 単語クリック登録リクエストDTO
type ClickWordRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Word        string `json:"word" validate:"required,min=1"`
	Translation string `json:"translation" validate:"required"`
	Context     string `json:"context,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
	Level       string `json:"level,omitempty" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
}

// 単語保存（復習キュー登録）リクエストDTO
type SaveWordRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Word   string `json:"word" validate:"required,min=1"`
}
