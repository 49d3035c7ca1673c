//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"langfeed/internal/middleware"
	"langfeed/internal/model"

	"gorm.io/gorm"
)

// CandidateFilter はカタログから候補を引く際の条件です
type CandidateFilter struct {
	MinTier    int
	MaxTier    int
	ExcludeIDs []string
	Limit      int
}

// ContentRepository はコンテンツカタログへの読み取りアクセスを提供します
type ContentRepository interface {
	FindCandidates(ctx context.Context, db *gorm.DB, filter CandidateFilter) ([]*model.Content, error)
	FindByID(ctx context.Context, db *gorm.DB, contentID string) (*model.Content, error)
}

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

func (r *gormContentRepository) FindCandidates(ctx context.Context, db *gorm.DB, filter CandidateFilter) ([]*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	var contents []*model.Content

	query := db.WithContext(ctx).
		Where("difficulty_tier >= ? AND difficulty_tier <= ?", filter.MinTier, filter.MaxTier)
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("content_id NOT IN ?", filter.ExcludeIDs)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	// 学習パス順で安定した取得順にする (同点時のランキングがこの順になる)
	result := query.
		Order("learning_path_id ASC, sequence_order ASC, dopamine_score DESC, content_id ASC").
		Find(&contents)
	if result.Error != nil {
		logger.Error("Error finding candidate contents in DB",
			"error", result.Error,
			"min_tier", filter.MinTier,
			"max_tier", filter.MaxTier,
		)
		return nil, fmt.Errorf("gormContentRepository.FindCandidates: %w", result.Error)
	}
	return contents, nil
}

func (r *gormContentRepository) FindByID(ctx context.Context, db *gorm.DB, contentID string) (*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	var content model.Content
	result := db.WithContext(ctx).Where("content_id = ?", contentID).First(&content)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding content by ID in DB",
			"error", result.Error,
			"content_id", contentID,
		)
		return nil, fmt.Errorf("gormContentRepository.FindByID: %w", result.Error)
	}
	return &content, nil
}
