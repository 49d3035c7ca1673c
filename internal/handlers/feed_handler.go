// internal/handlers/feed_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"langfeed/internal/model"
	"langfeed/internal/service"
	"langfeed/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type FeedHandler struct {
	sequencer service.SequencerService
	fallback  service.FallbackService
	logger    *slog.Logger
}

func NewFeedHandler(sequencer service.SequencerService, fallback service.FallbackService, logger *slog.Logger) *FeedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedHandler{
		sequencer: sequencer,
		fallback:  fallback,
		logger:    logger,
	}
}

// NextItem は適応型フィードの次のアイテムを返すハンドラ。
// パーソナライズ候補が無い場合はフォールバックフィードに切り替え、fallback: true を付けます。
func (h *FeedHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "NextItem"))

	var req model.NextFeedRequest
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
	logger = logger.With(slog.String("user_id", req.UserID))

	resp, err := h.sequencer.NextItem(r.Context(), &req)
	if err != nil {
		logger.Error("Error selecting next item in sequencer", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Item == nil {
		// フォールバックは決定的: 除外済み件数をオフセットとして使う
		items, _ := h.fallback.GetFallbackFeed(1, len(req.ExcludeIDs))
		if len(items) > 0 {
			resp.Item = items[0]
			resp.Fallback = true
		}
		logger.Info("Serving fallback feed item")
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// handleValidationError はvalidatorのエラーを日本語メッセージ付きのAppErrorに変換します
func handleValidationError(w http.ResponseWriter, logger *slog.Logger, err error, req interface{}) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))

		// 最初のエラーを代表としてクライアントに返す
		firstErr := validationErrors[0]
		translatedMsg := firstErr.Translate(webutil.Trans)

		appErr := model.NewAppError(
			"VALIDATION_ERROR",
			translatedMsg,
			firstErr.Field(),
			model.ErrInvalidInput,
		)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger.Error("Unexpected error during validation", slog.Any("error", err))
	webutil.HandleError(w, logger, err)
}
