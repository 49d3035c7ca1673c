// internal/handlers/feed_handler_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"langfeed/internal/handlers"
	"langfeed/internal/model"
	"langfeed/internal/service"
	svc_mocks "langfeed/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupFeedRouter(mockSequencer *svc_mocks.SequencerService) *chi.Mux {
	handler := handlers.NewFeedHandler(mockSequencer, service.NewFallbackService(), testLogger())
	r := chi.NewRouter()
	r.Post("/api/v1/feed/next", handler.NextItem)
	return r
}

func TestFeedHandler_NextItem(t *testing.T) {
	personalized := &model.Content{
		ContentID:            "c-1",
		Type:                 model.ContentTypeVideo,
		Title:                "Un día en el mercado",
		KnownWordsPercentage: 0.9,
		DifficultyTier:       2,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.SequencerService)
		expectedStatus int
		expectedCode   string
		verifyBody     func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "正常系: パーソナライズ候補を返す",
			body: model.NextFeedRequest{UserID: "user-1"},
			setupMock: func(m *svc_mocks.SequencerService) {
				m.On("NextItem", mock.Anything, mock.MatchedBy(func(req *model.NextFeedRequest) bool {
					return req.UserID == "user-1"
				})).Return(&model.NextFeedResponse{
					Item:    personalized,
					Context: model.FeedContext{TargetDifficultyTier: 2},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp model.NextFeedResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Item)
				assert.Equal(t, "c-1", resp.Item.ContentID)
				assert.False(t, resp.Fallback)
			},
		},
		{
			name: "正常系: 候補なしはフォールバックに切り替えて fallback:true",
			body: model.NextFeedRequest{UserID: "user-1"},
			setupMock: func(m *svc_mocks.SequencerService) {
				m.On("NextItem", mock.Anything, mock.Anything).Return(&model.NextFeedResponse{
					Context: model.FeedContext{TargetDifficultyTier: 3},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp model.NextFeedResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Item)
				assert.Equal(t, "fallback-video-1", resp.Item.ContentID)
				assert.True(t, resp.Fallback)
			},
		},
		{
			name: "正常系: フォールバックは除外件数をオフセットとして進む",
			body: model.NextFeedRequest{
				UserID:     "user-1",
				ExcludeIDs: []string{"fallback-video-1", "fallback-video-2"},
			},
			setupMock: func(m *svc_mocks.SequencerService) {
				m.On("NextItem", mock.Anything, mock.Anything).Return(&model.NextFeedResponse{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp model.NextFeedResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Item)
				assert.Equal(t, "fallback-article-1", resp.Item.ContentID)
				assert.True(t, resp.Fallback)
			},
		},
		{
			name:           "異常系: user_id 未指定はバリデーションエラー",
			body:           model.NextFeedRequest{},
			setupMock:      func(m *svc_mocks.SequencerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: feedback の値が不正",
			body:           map[string]interface{}{"user_id": "user-1", "feedback": "loved"},
			setupMock:      func(m *svc_mocks.SequencerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 壊れたJSONボディ",
			body:           `{"user_id": `,
			setupMock:      func(m *svc_mocks.SequencerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: サービス内部エラー",
			body: model.NextFeedRequest{UserID: "user-1"},
			setupMock: func(m *svc_mocks.SequencerService) {
				m.On("NextItem", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテンツ候補の取得に失敗しました。", "", errors.New("db down"))).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSequencer := new(svc_mocks.SequencerService)
			tt.setupMock(mockSequencer)
			router := setupFeedRouter(mockSequencer)

			req := newJSONRequest(t, http.MethodPost, "/api/v1/feed/next", tt.body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrorCode(t, rec))
			}
			if tt.verifyBody != nil {
				tt.verifyBody(t, rec)
			}
			mockSequencer.AssertExpectations(t)
		})
	}
}
