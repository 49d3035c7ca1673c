//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"langfeed/internal/config"
	"langfeed/internal/middleware"
	"langfeed/internal/model"
	"langfeed/internal/repository"

	"gorm.io/gorm"
)

// ReviewService は復習スケジューラです。
// キュー生成は読み取り専用で、レコードを変更するのは復習結果の送信だけです。
type ReviewService interface {
	GetDueReviews(ctx context.Context, userID string, now time.Time, limit int) (*model.DueReviewsResponse, error)
	// CountDueReviews は件数のみを返します (バッジ表示用の軽量パス)
	CountDueReviews(ctx context.Context, userID string, now time.Time) (int64, error)
	SubmitReviewOutcome(ctx context.Context, userID, word string, correct bool, latency time.Duration) (*model.Word, error)
}

type reviewService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	policy   MasteryPolicy
	cfg      *config.Config
}

func NewReviewService(db *gorm.DB, wordRepo repository.WordRepository, policy MasteryPolicy, cfg *config.Config) ReviewService {
	if policy == nil {
		policy = NewDefaultMasteryPolicy()
	}
	return &reviewService{
		db:       db,
		wordRepo: wordRepo,
		policy:   policy,
		cfg:      cfg,
	}
}

// sortDueWords は復習キューの順序付けです。純粋関数として切り出し、入れ替えに対して安定です。
// 1. 習熟度の昇順 (習熟が浅い語を先に)
// 2. next_review の昇順。nil (未スケジュール) は最も早い扱い
// 3. review_count の昇順 (復習回数が少ない語を先に)
func sortDueWords(words []*model.Word) {
	sort.SliceStable(words, func(i, j int) bool {
		a, b := words[i], words[j]
		if a.MasteryLevel != b.MasteryLevel {
			return a.MasteryLevel < b.MasteryLevel
		}
		switch {
		case a.NextReview == nil && b.NextReview != nil:
			return true
		case a.NextReview != nil && b.NextReview == nil:
			return false
		case a.NextReview != nil && b.NextReview != nil:
			if !a.NextReview.Equal(*b.NextReview) {
				return a.NextReview.Before(*b.NextReview)
			}
		}
		return a.ReviewCount < b.ReviewCount
	})
}

func (s *reviewService) GetDueReviews(ctx context.Context, userID string, now time.Time, limit int) (*model.DueReviewsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if limit <= 0 {
		limit = s.cfg.App.ReviewLimit
	}

	words, err := s.wordRepo.FindDueByUser(ctx, s.db, userID, now)
	if err != nil {
		logger.Error("Failed to find due words from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習単語の取得に失敗しました。", "", err)
	}

	sortDueWords(words)

	total := len(words)
	hasMore := total > limit
	if hasMore {
		words = words[:limit]
	}

	responses := make([]*model.DueReviewWord, 0, len(words))
	for _, w := range words {
		responses = append(responses, &model.DueReviewWord{
			WordID:       w.WordID,
			Word:         w.Word,
			Translation:  w.Translation,
			Level:        w.Level,
			MasteryLevel: w.MasteryLevel,
			NextReview:   w.NextReview,
			ReviewCount:  w.ReviewCount,
		})
	}

	logger.Info("Successfully retrieved due reviews", "count", len(responses), "has_more", hasMore)
	return &model.DueReviewsResponse{
		Words:   responses,
		Count:   len(responses),
		HasMore: hasMore,
	}, nil
}

func (s *reviewService) CountDueReviews(ctx context.Context, userID string, now time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	// 全件取得＋ソートを避け、COUNTクエリだけで返す
	count, err := s.wordRepo.CountDueByUser(ctx, s.db, userID, now)
	if err != nil {
		logger.Error("Failed to count due words", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "復習単語数の取得に失敗しました。", "", err)
	}
	return count, nil
}

func (s *reviewService) SubmitReviewOutcome(ctx context.Context, userID, word string, correct bool, latency time.Duration) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word", word)

	normalized := normalizeWord(word)
	var updated *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.wordRepo.FindByUserAndWord(ctx, tx, userID, normalized)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "対象の単語が見つかりません。", "word", model.ErrNotFound)
			}
			logger.Error("Error finding word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		if !record.Saved {
			// 復習パイプラインに入っていない単語の結果は受け付けない
			return model.NewAppError("WORD_NOT_SAVED", "この単語は復習リストに登録されていません。", "word", model.ErrInvalidInput)
		}

		now := time.Now()
		newLevel, nextReview := s.policy.Advance(record, correct, latency, now)

		updates := map[string]interface{}{
			"mastery_level": newLevel,
			"next_review":   nextReview,
			"review_count":  gorm.Expr("review_count + ?", 1),
		}
		if err := s.wordRepo.Update(ctx, tx, userID, normalized, updates); err != nil {
			logger.Error("Error updating review progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", err)
		}

		updated, err = s.wordRepo.FindByUserAndWord(ctx, tx, userID, normalized)
		if err != nil {
			logger.Error("Error fetching updated record in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の取得に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review outcome recorded", "correct", correct, "mastery_level", updated.MasteryLevel)
	return updated, nil
}
