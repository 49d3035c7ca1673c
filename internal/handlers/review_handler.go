// internal/handlers/review_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"langfeed/internal/model"
	"langfeed/internal/service"
	"langfeed/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetDueReviews は復習キュー (または count_only=true なら件数のみ) を返すハンドラ
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueReviews"))

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", "ユーザーIDは必須項目です。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID))

	now := time.Now()

	if countOnly, _ := strconv.ParseBool(r.URL.Query().Get("count_only")); countOnly {
		count, err := h.service.CountDueReviews(r.Context(), userID, now)
		if err != nil {
			logger.Error("Error counting due reviews in service", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, model.DueReviewCountResponse{Count: count}, logger)
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			appErr := model.NewAppError("VALIDATION_ERROR", "limitの形式が正しくありません。", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = parsed
	}

	reviews, err := h.service.GetDueReviews(r.Context(), userID, now, limit)
	if err != nil {
		logger.Error("Error getting due reviews in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Due reviews listed successfully", slog.Int("count", reviews.Count))
	webutil.RespondWithJSON(w, http.StatusOK, reviews, logger)
}

// SubmitReviewOutcome は復習結果を受け取り、習熟度と次回復習日時を前進させるハンドラ
func (h *ReviewHandler) SubmitReviewOutcome(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitReviewOutcome"))

	word := chi.URLParam(r, "word")

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		handleValidationError(w, logger, err, req)
		return
	}
	logger = logger.With(slog.String("user_id", req.UserID), slog.String("word", word))

	latency := time.Duration(req.LatencyMS) * time.Millisecond
	updated, err := h.service.SubmitReviewOutcome(r.Context(), req.UserID, word, *req.IsCorrect, latency)
	if err != nil {
		logger.Error("Error submitting review outcome in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review outcome submitted", slog.Int("mastery_level", updated.MasteryLevel))
	webutil.RespondWithJSON(w, http.StatusOK, updated, logger)
}
