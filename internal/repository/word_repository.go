//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"langfeed/internal/middleware"
	"langfeed/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// WordRepository は語彙レコードストアへの読み書きを提供します。
// DB接続(またはトランザクション)はService層から渡されます。
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, word string) (*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, userID, word string, updates map[string]interface{}) error
	// Restore は論理削除済みの行を対象に含めて更新します。
	// 削除解除には updates に deleted_at = nil を含めて渡します。
	Restore(ctx context.Context, tx *gorm.DB, userID, word string, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID, word string) error
	FindByUser(ctx context.Context, db *gorm.DB, userID string, savedOnly bool, limit int) ([]*model.Word, error)
	// FindDueByUser は復習対象 (saved かつ next_review が NULL または now 以前) を全件返します。
	// 並び替えはScheduler側の純粋な比較関数で行います。
	FindDueByUser(ctx context.Context, db *gorm.DB, userID string, now time.Time) ([]*model.Word, error)
	// CountDueByUser は復習対象の件数のみを返します (count_only 用の軽量パス)
	CountDueByUser(ctx context.Context, db *gorm.DB, userID string, now time.Time) (int64, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

// isUniqueViolation は (user_id, word) の複合ユニーク制約違反かどうかを判定します
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"user_id", word.UserID,
			"word", word.Word,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, word string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var rec model.Word
	result := db.WithContext(ctx).Where("user_id = ? AND word = ?", userID, word).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word in DB",
			"error", result.Error,
			"user_id", userID,
			"word", word,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByUserAndWord: %w", result.Error)
	}
	return &rec, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, userID, word string, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("user_id = ? AND word = ?", userID, word).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"user_id", userID,
			"word", word,
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Restore(ctx context.Context, tx *gorm.DB, userID, word string, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Unscoped().Model(&model.Word{}).Where("user_id = ? AND word = ?", userID, word).Updates(updates)
	if result.Error != nil {
		logger.Error("Error restoring word in DB",
			"error", result.Error,
			"user_id", userID,
			"word", word,
		)
		return fmt.Errorf("gormWordRepository.Restore: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, userID, word string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ? AND word = ?", userID, word).Delete(&model.Word{})
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"user_id", userID,
			"word", word,
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) FindByUser(ctx context.Context, db *gorm.DB, userID string, savedOnly bool, limit int) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	query := db.WithContext(ctx).Where("user_id = ?", userID)
	if savedOnly {
		query = query.Where("saved = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Order("last_seen DESC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by user in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByUser: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID string, now time.Time) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).
		Where("user_id = ? AND saved = ?", userID, true).
		Where("next_review IS NULL OR next_review <= ?", now).
		Find(&words)
	if result.Error != nil {
		logger.Error("Error finding due words in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormWordRepository.FindDueByUser: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) CountDueByUser(ctx context.Context, db *gorm.DB, userID string, now time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("user_id = ? AND saved = ?", userID, true).
		Where("next_review IS NULL OR next_review <= ?", now).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting due words in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return 0, fmt.Errorf("gormWordRepository.CountDueByUser: %w", result.Error)
	}
	return count, nil
}
