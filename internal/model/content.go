// internal/model/content.go
package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// ContentType はフィードアイテムの種別です
type ContentType string

const (
	ContentTypeVideo      ContentType = "video"
	ContentTypeArticle    ContentType = "article"
	ContentTypePodcast    ContentType = "podcast"
	ContentTypeMusic      ContentType = "music"
	ContentTypeImageAudio ContentType = "image_audio"
	ContentTypeSocialPost ContentType = "social_post"
)

// Caption は字幕1行分（原文と訳文）を表します
type Caption struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Text        string  `json:"text"`
	Translation string  `json:"translation,omitempty"`
}

// StringList はJSONカラムとして保存する文字列スライスです
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSONColumn(src, l)
}

// CaptionList はJSONカラムとして保存する字幕スライスです
type CaptionList []Caption

func (l CaptionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *CaptionList) Scan(src interface{}) error {
	return scanJSONColumn(src, l)
}

func scanJSONColumn(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}

// Content はカタログ上のフィードアイテムを表します。
// シーケンス決定の間は不変として扱います。
type Content struct {
	ContentID            string      `gorm:"primaryKey" json:"id"`
	Type                 ContentType `gorm:"not null" json:"type"`
	Title                string      `gorm:"not null" json:"title"`
	ContentURL           string      `gorm:"not null" json:"content_url"`
	ThumbnailURL         string      `json:"thumbnail_url,omitempty"`
	Transcription        string      `json:"transcription,omitempty"`
	DurationSeconds      int         `json:"duration_seconds,omitempty"`
	NewWords             StringList  `gorm:"type:text" json:"new_words"` // このアイテムが導入する語彙
	KnownWordsPercentage float64     `gorm:"not null;default:0" json:"known_words_percentage"`
	Captions             CaptionList `gorm:"type:text" json:"captions,omitempty"`
	LearningPathID       *string     `gorm:"index" json:"learning_path_id,omitempty"`
	SequenceOrder        *int        `json:"sequence_order,omitempty"`
	DifficultyTier       int         `gorm:"not null;index" json:"difficulty_tier"` // 1〜5
	DopamineScore        float64     `gorm:"not null;default:0.5" json:"dopamine_score"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}
