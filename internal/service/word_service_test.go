// internal/service/word_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"langfeed/internal/model"
	"langfeed/internal/repository"
	"langfeed/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBWord() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for word service testing: " + err.Error())
	}
	if err := db.AutoMigrate(&model.Word{}); err != nil {
		panic("failed to migrate database for word service testing: " + err.Error())
	}
	return db
}

// --- Test normalizeWord ---
func Test_normalizeWord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "小文字化", input: "Mercado", want: "mercado"},
		{name: "前後の空白をトリム", input: "  frutas  ", want: "frutas"},
		{name: "空白のみは空文字", input: "   ", want: ""},
		{name: "既に正規形ならそのまま", input: "bebidas", want: "bebidas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeWord(tt.input))
		})
	}
}

// --- Test ClickWord ---
func Test_wordService_ClickWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	baseReq := func() *model.ClickWordRequest {
		return &model.ClickWordRequest{
			UserID:      "user-1",
			Word:        "Mercado",
			Translation: "market",
			Context:     "Fuimos al mercado.",
			Source:      "video",
			SourceID:    "vid-1",
			Level:       "A2",
		}
	}

	t.Run("正常系: 初回クリックでレコード作成 (click_count=1)", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(nil, model.ErrNotFound).Once()
		mockWordRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(w *model.Word) bool {
			assert.Equal(t, "mercado", w.Word) // 正規化して保存する
			assert.Equal(t, "user-1", w.UserID)
			assert.Equal(t, 1, w.ClickCount)
			assert.False(t, w.Saved)
			assert.Zero(t, w.MasteryLevel)
			assert.Nil(t, w.NextReview)
			return true
		})).Return(nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.ClickWord(ctx, baseReq())

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "mercado", got.Word)
		assert.Equal(t, 1, got.ClickCount)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: レベル・ソース省略時はデフォルトを補う", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "frutas").
			Return(nil, model.ErrNotFound).Once()
		mockWordRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(w *model.Word) bool {
			assert.Equal(t, "A2", w.Level)
			assert.Equal(t, "article", w.Source)
			return true
		})).Return(nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		_, err := wordService.ClickWord(ctx, &model.ClickWordRequest{
			UserID:      "user-1",
			Word:        "frutas",
			Translation: "fruits",
		})
		require.NoError(t, err)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 2回目以降のクリックはカウント加算のみで進捗に触れない", func(t *testing.T) {
		existing := &model.Word{
			WordID:       uuid.New(),
			UserID:       "user-1",
			Word:         "mercado",
			Translation:  "market",
			ClickCount:   3,
			Saved:        true,
			MasteryLevel: 2,
		}
		after := *existing
		after.ClickCount = 4

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(existing, nil).Once()
		mockWordRepo.On("Update", ctx, mock.Anything, "user-1", "mercado",
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				assert.Contains(t, updates, "click_count")
				assert.Contains(t, updates, "translation")
				assert.Contains(t, updates, "last_seen")
				// saved / mastery_level / next_review は更新対象外
				assert.NotContains(t, updates, "saved")
				assert.NotContains(t, updates, "mastery_level")
				assert.NotContains(t, updates, "next_review")
				return true
			})).Return(nil).Once()
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(&after, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.ClickWord(ctx, baseReq())

		require.NoError(t, err)
		assert.Equal(t, 4, got.ClickCount)
		assert.True(t, got.Saved)
		assert.Equal(t, 2, got.MasteryLevel)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 空のコンテキストは既存値を上書きしない", func(t *testing.T) {
		existing := &model.Word{WordID: uuid.New(), UserID: "user-1", Word: "mercado", ClickCount: 1}
		after := *existing
		after.ClickCount = 2

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(existing, nil).Once()
		mockWordRepo.On("Update", ctx, mock.Anything, "user-1", "mercado",
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				assert.NotContains(t, updates, "context")
				assert.NotContains(t, updates, "source")
				assert.NotContains(t, updates, "source_id")
				return true
			})).Return(nil).Once()
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(&after, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		req := &model.ClickWordRequest{UserID: "user-1", Word: "mercado", Translation: "market"}
		_, err := wordService.ClickWord(ctx, req)
		require.NoError(t, err)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 同時クリックの競合は加算更新に切り替える", func(t *testing.T) {
		after := &model.Word{WordID: uuid.New(), UserID: "user-1", Word: "mercado", ClickCount: 2}

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(nil, model.ErrNotFound).Once()
		mockWordRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.Word")).
			Return(model.ErrConflict).Once()
		mockWordRepo.On("Update", ctx, mock.Anything, "user-1", "mercado", mock.Anything).
			Return(nil).Once()
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(after, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.ClickWord(ctx, baseReq())

		require.NoError(t, err)
		assert.Equal(t, 2, got.ClickCount)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 削除済みの単語の再クリックは行を復元して初回扱いにする", func(t *testing.T) {
		restored := &model.Word{WordID: uuid.New(), UserID: "user-1", Word: "mercado", Translation: "market", ClickCount: 1}

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(nil, model.ErrNotFound).Once()
		// 論理削除済みの行がユニーク制約を占有しているケース:
		// Create は競合し、生存行向けの Update は空振りする
		mockWordRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*model.Word")).
			Return(model.ErrConflict).Once()
		mockWordRepo.On("Update", ctx, mock.Anything, "user-1", "mercado", mock.Anything).
			Return(model.ErrNotFound).Once()
		mockWordRepo.On("Restore", ctx, mock.Anything, "user-1", "mercado",
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				assert.Contains(t, updates, "deleted_at")
				assert.Nil(t, updates["deleted_at"])
				assert.Equal(t, 1, updates["click_count"])
				assert.Equal(t, false, updates["saved"])
				assert.Equal(t, 0, updates["mastery_level"])
				assert.Nil(t, updates["next_review"])
				assert.Equal(t, 0, updates["review_count"])
				return true
			})).Return(nil).Once()
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(restored, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.ClickWord(ctx, baseReq())

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ClickCount)
		assert.False(t, got.Saved)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 空白のみの単語は登録できない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		wordService := NewWordService(db, mockWordRepo)

		req := baseReq()
		req.Word = "   "
		got, err := wordService.ClickWord(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, got)
		mockWordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test ClickWord (削除後の再クリック、実DB) ---
func Test_wordService_ClickWord_AfterDelete(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // ユニーク制約違反を gorm.ErrDuplicatedKey に変換する
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Word{}))

	wordService := NewWordService(db, repository.NewGormWordRepository())

	req := &model.ClickWordRequest{
		UserID:      "user-revive",
		Word:        "paraguas",
		Translation: "umbrella",
	}

	first, err := wordService.ClickWord(ctx, req)
	require.NoError(t, err)

	// 保存して進捗を付けてから削除する
	_, err = wordService.SaveWord(ctx, "user-revive", "paraguas")
	require.NoError(t, err)
	require.NoError(t, wordService.DeleteWord(ctx, "user-revive", "paraguas"))

	// 論理削除の行が (user_id, word) を占有していても、再クリックは初回クリックとして成立する
	again, err := wordService.ClickWord(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, 1, again.ClickCount)
	assert.False(t, again.Saved)
	assert.Zero(t, again.MasteryLevel)
	assert.Nil(t, again.NextReview)
	assert.Equal(t, first.WordID, again.WordID) // 行は作り直さず復元する
}

// --- Test SaveWord ---
func Test_wordService_SaveWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	t.Run("正常系: 保存で復習パイプラインに入る (24時間後に初回復習)", func(t *testing.T) {
		clicked := &model.Word{
			WordID:     uuid.New(),
			UserID:     "user-1",
			Word:       "mercado",
			ClickCount: 2,
			Saved:      false,
		}
		after := *clicked
		after.Saved = true
		after.MasteryLevel = 0
		nextReview := time.Now().Add(24 * time.Hour)
		after.NextReview = &nextReview

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(clicked, nil).Once()
		mockWordRepo.On("Update", ctx, mock.Anything, "user-1", "mercado",
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				assert.Equal(t, true, updates["saved"])
				assert.Equal(t, 0, updates["mastery_level"])
				next, ok := updates["next_review"].(time.Time)
				require.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(24*time.Hour), next, 5*time.Second)
				return true
			})).Return(nil).Once()
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(&after, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.SaveWord(ctx, "user-1", "Mercado")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Saved)
		assert.Zero(t, got.MasteryLevel)
		require.NotNil(t, got.NextReview)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 再保存は進捗をリセットしない", func(t *testing.T) {
		nextReview := time.Now().Add(7 * 24 * time.Hour)
		alreadySaved := &model.Word{
			WordID:       uuid.New(),
			UserID:       "user-1",
			Word:         "mercado",
			Saved:        true,
			MasteryLevel: 3,
			NextReview:   &nextReview,
			ReviewCount:  5,
		}

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "mercado").
			Return(alreadySaved, nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.SaveWord(ctx, "user-1", "mercado")

		require.NoError(t, err)
		assert.Equal(t, 3, got.MasteryLevel)
		assert.Equal(t, 5, got.ReviewCount)
		assert.Equal(t, &nextReview, got.NextReview)
		mockWordRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: クリックしていない単語は保存できない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByUserAndWord", ctx, mock.Anything, "user-1", "nunca").
			Return(nil, model.ErrNotFound).Once()

		wordService := NewWordService(db, mockWordRepo)
		got, err := wordService.SaveWord(ctx, "user-1", "nunca")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "WORD_NOT_CLICKED", appErr.Detail.Code)
		assert.Nil(t, got)
		mockWordRepo.AssertExpectations(t)
	})
}

// --- Test DeleteWord ---
func Test_wordService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	t.Run("正常系: 削除成功", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.Anything, "user-1", "mercado").
			Return(nil).Once()

		wordService := NewWordService(db, mockWordRepo)
		err := wordService.DeleteWord(ctx, "user-1", "Mercado")

		require.NoError(t, err)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 対象が存在しない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.Anything, "user-1", "nunca").
			Return(model.ErrNotFound).Once()

		wordService := NewWordService(db, mockWordRepo)
		err := wordService.DeleteWord(ctx, "user-1", "nunca")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		mockWordRepo.AssertExpectations(t)
	})
}
