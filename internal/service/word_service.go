//go:generate mockery --name WordService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"langfeed/internal/middleware"
	"langfeed/internal/model"
	"langfeed/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordService は語彙レコードのCRUDを提供します
type WordService interface {
	// ClickWord は create-or-increment のアップサートです。
	// 初回クリックでレコードを作成し、2回目以降は click_count と表示情報だけを更新します。
	ClickWord(ctx context.Context, req *model.ClickWordRequest) (*model.Word, error)
	// SaveWord は単語を復習パイプラインに入れます。クリック済みのレコードが前提です。
	SaveWord(ctx context.Context, userID, word string) (*model.Word, error)
	ListWords(ctx context.Context, userID string, savedOnly bool, limit int) ([]*model.Word, error)
	DeleteWord(ctx context.Context, userID, word string) error
}

type wordService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo repository.WordRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
	}
}

// normalizeWord は保存キーとなる語形 (小文字・トリム済み) に正規化します
func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func (s *wordService) ClickWord(ctx context.Context, req *model.ClickWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("user_id", req.UserID)

	normalized := normalizeWord(req.Word)
	if normalized == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語が空です。", "word", model.ErrInvalidInput)
	}

	var result *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.wordRepo.FindByUserAndWord(ctx, tx, req.UserID, normalized)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding word in click transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認中にエラーが発生しました。", "", err)
		}

		now := time.Now()

		if errors.Is(err, model.ErrNotFound) {
			// --- 新規作成 (クリック1回目) ---
			level := req.Level
			if level == "" {
				level = "A2"
			}
			source := req.Source
			if source == "" {
				source = "article"
			}
			word := &model.Word{
				WordID:      uuid.New(),
				UserID:      req.UserID,
				Word:        normalized,
				Translation: req.Translation,
				Context:     req.Context,
				Source:      source,
				SourceID:    req.SourceID,
				Level:       level,
				ClickCount:  1,
				LastSeen:    now,
			}
			if createErr := s.wordRepo.Create(ctx, tx, word); createErr != nil {
				if errors.Is(createErr, model.ErrConflict) {
					// 同時クリックでの競合。作成済みレコードに対する更新として扱う
					incErr := s.incrementClick(ctx, tx, req, normalized, now, &result)
					if errors.Is(incErr, model.ErrNotFound) {
						// 生存行が無いのに一意制約に当たるのは、論理削除済みの行が
						// (user_id, word) を占有しているケース。初回クリックとして復元する
						return s.reviveClicked(ctx, tx, word, &result)
					}
					return incErr
				}
				logger.Error("Error creating word in click transaction", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の登録に失敗しました。", "", createErr)
			}
			result = word
			return nil
		}

		// --- 既存レコード (クリック2回目以降) ---
		// saved / mastery_level / next_review には触れない
		return s.incrementClick(ctx, tx, req, normalized, now, &result)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word click recorded", "word", normalized, "click_count", result.ClickCount)
	return result, nil
}

// incrementClick はクリック回数の加算と表示情報の更新を行います
func (s *wordService) incrementClick(ctx context.Context, tx *gorm.DB, req *model.ClickWordRequest, normalized string, now time.Time, result **model.Word) error {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{
		"click_count": gorm.Expr("click_count + ?", 1),
		"translation": req.Translation,
		"last_seen":   now,
	}
	if req.Context != "" {
		updates["context"] = req.Context
	}
	if req.Source != "" {
		updates["source"] = req.Source
	}
	if req.SourceID != "" {
		updates["source_id"] = req.SourceID
	}

	if err := s.wordRepo.Update(ctx, tx, req.UserID, normalized, updates); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error incrementing click count", "error", err)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", err)
	}

	updated, err := s.wordRepo.FindByUserAndWord(ctx, tx, req.UserID, normalized)
	if err != nil {
		logger.Error("Error fetching word after click update", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	*result = updated
	return nil
}

// reviveClicked は論理削除済みの行を初回クリック相当の状態に戻します。
// 削除前の学習進捗 (saved / mastery_level / next_review / review_count) は引き継ぎません。
func (s *wordService) reviveClicked(ctx context.Context, tx *gorm.DB, word *model.Word, result **model.Word) error {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{
		"deleted_at":    nil,
		"translation":   word.Translation,
		"context":       word.Context,
		"source":        word.Source,
		"source_id":     word.SourceID,
		"level":         word.Level,
		"click_count":   1,
		"saved":         false,
		"mastery_level": 0,
		"next_review":   nil,
		"review_count":  0,
		"last_seen":     word.LastSeen,
	}
	if err := s.wordRepo.Restore(ctx, tx, word.UserID, word.Word, updates); err != nil {
		logger.Error("Error restoring deleted word", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の登録に失敗しました。", "", err)
	}

	restored, err := s.wordRepo.FindByUserAndWord(ctx, tx, word.UserID, word.Word)
	if err != nil {
		logger.Error("Error fetching word after restore", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	*result = restored
	return nil
}

func (s *wordService) SaveWord(ctx context.Context, userID, word string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	normalized := normalizeWord(word)
	var saved *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.wordRepo.FindByUserAndWord(ctx, tx, userID, normalized)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// クリックしていない単語は保存できない (暗黙の作成はしない)
				return model.NewAppError("WORD_NOT_CLICKED", "単語が見つかりません。先に単語をクリックしてください。", "word", model.ErrNotFound)
			}
			logger.Error("Error finding word in save transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認中にエラーが発生しました。", "", err)
		}

		if record.Saved {
			// 再保存は進捗をリセットしない
			saved = record
			return nil
		}

		nextReview := time.Now().Add(24 * time.Hour)
		updates := map[string]interface{}{
			"saved":         true,
			"mastery_level": 0,
			"next_review":   nextReview,
		}
		if err := s.wordRepo.Update(ctx, tx, userID, normalized, updates); err != nil {
			logger.Error("Error marking word as saved", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の保存に失敗しました。", "", err)
		}

		saved, err = s.wordRepo.FindByUserAndWord(ctx, tx, userID, normalized)
		if err != nil {
			logger.Error("Error fetching saved word", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word saved for review", "word", normalized)
	return saved, nil
}

func (s *wordService) ListWords(ctx context.Context, userID string, savedOnly bool, limit int) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	words, err := s.wordRepo.FindByUser(ctx, s.db, userID, savedOnly, limit)
	if err != nil {
		logger.Error("Error listing words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}
	return words, nil
}

func (s *wordService) DeleteWord(ctx context.Context, userID, word string) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	normalized := normalizeWord(word)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.Delete(ctx, tx, userID, normalized); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "対象の単語が見つかりません。", "word", model.ErrNotFound)
			}
			logger.Error("Error deleting word", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Word deleted", "word", normalized)
	return nil
}
