// internal/service/fallback_service.go
package service

import (
	"fmt"

	"langfeed/internal/model"
)

// FallbackService はパーソナライズ無しの決定的なフィードを提供します。
// 新規ユーザーやカタログ枯渇でもフィードが途切れないことを保証します。
type FallbackService interface {
	// GetFallbackFeed は limit 件と総アイテム数を返します。
	// 一巡した後は同じアイテムを "-cycle-N" サフィックス付きIDで再利用します。
	GetFallbackFeed(limit, offset int) ([]*model.Content, int)
}

type fallbackService struct {
	items []*model.Content
}

// NewFallbackService は組み込みのアイテム列を使うプロバイダを生成します
func NewFallbackService() FallbackService {
	return &fallbackService{items: fallbackItems}
}

// NewFallbackServiceWithItems はテストや外部カタログ差し替え用です
func NewFallbackServiceWithItems(items []*model.Content) FallbackService {
	return &fallbackService{items: items}
}

func (s *fallbackService) GetFallbackFeed(limit, offset int) ([]*model.Content, int) {
	total := len(s.items)
	if total == 0 || limit <= 0 {
		return []*model.Content{}, total
	}
	if offset < 0 {
		offset = 0
	}

	items := make([]*model.Content, 0, limit)
	for i := 0; i < limit; i++ {
		index := (offset + i) % total
		cycle := (offset + i) / total
		base := s.items[index]

		item := *base // アイテムのコピーを返す (呼び出し側の変更から守る)
		if cycle > 0 {
			item.ContentID = fmt.Sprintf("%s-cycle-%d", base.ContentID, cycle)
		}
		items = append(items, &item)
	}
	return items, total
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// fallbackItems はDBが空でも配信できる組み込みコンテンツです
var fallbackItems = []*model.Content{
	{
		ContentID:            "fallback-video-1",
		Type:                 model.ContentTypeVideo,
		Title:                "Un día en el mercado",
		ContentURL:           "/videos/fallback/mercado.mp4",
		Transcription:        "Hoy visitamos el mercado del barrio para comprar frutas frescas y hablar con los vendedores.",
		DurationSeconds:      48,
		NewWords:             model.StringList{"mercado", "frutas", "vendedores"},
		KnownWordsPercentage: 0.93,
		LearningPathID:       strPtr("starter-everyday"),
		SequenceOrder:        intPtr(1),
		DifficultyTier:       1,
		DopamineScore:        0.7,
		Captions: model.CaptionList{
			{Start: 0, End: 2.5, Text: "¡Bienvenidos al mercado!", Translation: "Welcome to the market!"},
			{Start: 2.5, End: 5, Text: "Las frutas de hoy están muy frescas.", Translation: "Today's fruit is very fresh."},
		},
	},
	{
		ContentID:            "fallback-video-2",
		Type:                 model.ContentTypeVideo,
		Title:                "El gato que aprendió a nadar",
		ContentURL:           "/videos/fallback/gato.mp4",
		Transcription:        "Una historia corta sobre un gato curioso que descubre que el agua no es tan mala.",
		DurationSeconds:      55,
		NewWords:             model.StringList{"curioso", "descubre", "nadar"},
		KnownWordsPercentage: 0.91,
		LearningPathID:       strPtr("starter-everyday"),
		SequenceOrder:        intPtr(2),
		DifficultyTier:       1,
		DopamineScore:        0.8,
	},
	{
		ContentID:            "fallback-article-1",
		Type:                 model.ContentTypeArticle,
		Title:                "Cómo pedir un café en España",
		ContentURL:           "/articles/fallback/cafe",
		Transcription:        "Pedir un café parece sencillo, pero cada región tiene sus propias costumbres y nombres para las bebidas.",
		DurationSeconds:      120,
		NewWords:             model.StringList{"costumbres", "bebidas", "sencillo"},
		KnownWordsPercentage: 0.89,
		LearningPathID:       strPtr("starter-everyday"),
		SequenceOrder:        intPtr(3),
		DifficultyTier:       2,
		DopamineScore:        0.5,
	},
	{
		ContentID:            "fallback-podcast-1",
		Type:                 model.ContentTypePodcast,
		Title:                "Historias del metro",
		ContentURL:           "/audio/fallback/metro.mp3",
		Transcription:        "Tres pasajeros comparten lo más extraño que han visto en el metro de la ciudad.",
		DurationSeconds:      180,
		NewWords:             model.StringList{"pasajeros", "extraño", "ciudad"},
		KnownWordsPercentage: 0.88,
		LearningPathID:       strPtr("daily-stories"),
		SequenceOrder:        intPtr(1),
		DifficultyTier:       2,
		DopamineScore:        0.6,
	},
}
