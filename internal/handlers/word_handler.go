// internal/handlers/word_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"langfeed/internal/model"
	"langfeed/internal/service"
	"langfeed/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// ClickWord は単語クリックを記録するハンドラ (初回は作成、以降はカウント加算)
func (h *WordHandler) ClickWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClickWord"))

	var req model.ClickWordRequest
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

	word, err := h.service.ClickWord(r.Context(), &req)
	if err != nil {
		logger.Error("Error recording word click in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word click recorded", slog.String("word", word.Word), slog.Int("click_count", word.ClickCount))
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// SaveWord は単語を復習パイプラインに登録するハンドラ。
// クリックされたことのない単語は404になります (先にクリックが必要)。
func (h *WordHandler) SaveWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveWord"))

	var req model.SaveWordRequest
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

	word, err := h.service.SaveWord(r.Context(), req.UserID, req.Word)
	if err != nil {
		logger.Warn("Error saving word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word saved", slog.String("word", word.Word))
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// ListWords は単語一覧を返すハンドラ
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListWords"))

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", "ユーザーIDは必須項目です。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID))

	savedOnly, _ := strconv.ParseBool(r.URL.Query().Get("saved"))
	limit := 100
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	words, err := h.service.ListWords(r.Context(), userID, savedOnly, limit)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	logger.Info("Words listed successfully", slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// DeleteWord は単語を削除するハンドラ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", "ユーザーIDは必須項目です。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	word := chi.URLParam(r, "word")
	logger = logger.With(slog.String("user_id", userID), slog.String("word", word))

	if err := h.service.DeleteWord(r.Context(), userID, word); err != nil {
		logger.Warn("Error deleting word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
