// internal/handlers/journal_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/service"
	"go_wellness_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type JournalHandler struct {
	service service.JournalService
	logger  *slog.Logger
}

func NewJournalHandler(s service.JournalService, logger *slog.Logger) *JournalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalHandler{
		service: s,
		logger:  logger,
	}
}

// CreateEntry は新しいジャーナルエントリを作成するハンドラ
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateEntry"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateJournalRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating journal entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, entry, logger)
}

// ListEntries はジャーナルエントリの一覧を取得するハンドラ
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListEntries"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	limit := webutil.QueryInt(r, "limit", 0)
	offset := webutil.QueryInt(r, "offset", 0)

	entries, pagination, err := h.service.ListEntries(r.Context(), userID, limit, offset)
	if err != nil {
		logger.Error("Error listing journal entries in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if entries == nil {
		entries = []*model.JournalEntry{}
	}
	logger.Info("Journal entries listed successfully", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries":    entries,
		"pagination": pagination,
	}, logger)
}

// GetEntry はジャーナルエントリを1件取得するハンドラ
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEntry"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	entryID, ok := pathUUID(w, logger, chi.URLParam(r, "entryID"), "entry_id")
	if !ok {
		return
	}

	entry, err := h.service.GetEntry(r.Context(), userID, entryID)
	if err != nil {
		logger.Error("Error getting journal entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// UpdateEntry はジャーナルエントリを部分更新するハンドラ
func (h *JournalHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateEntry"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	entryID, ok := pathUUID(w, logger, chi.URLParam(r, "entryID"), "entry_id")
	if !ok {
		return
	}

	var req model.UpdateJournalRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), userID, entryID, &req)
	if err != nil {
		logger.Error("Error updating journal entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Journal entry updated successfully", slog.String("entry_id", entryID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// DeleteEntry はジャーナルエントリを論理削除するハンドラ
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteEntry"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	entryID, ok := pathUUID(w, logger, chi.URLParam(r, "entryID"), "entry_id")
	if !ok {
		return
	}

	if err := h.service.DeleteEntry(r.Context(), userID, entryID); err != nil {
		logger.Error("Error deleting journal entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Journal entry deleted successfully", slog.String("entry_id", entryID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary は直近N日間のジャーナルサマリーを取得するハンドラ
func (h *JournalHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSummary"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days := webutil.QueryInt(r, "days", 0)

	summary, err := h.service.GetDashboardSummary(r.Context(), userID, days)
	if err != nil {
		logger.Error("Error getting journal summary in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetMoodGraph は旧ムードグラフ互換の日次系列を取得するハンドラ
func (h *JournalHandler) GetMoodGraph(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMoodGraph"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days := webutil.QueryInt(r, "days", 0)

	points, err := h.service.GetMoodGraph(r.Context(), userID, days)
	if err != nil {
		logger.Error("Error getting mood graph in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if points == nil {
		points = []model.MoodGraphPoint{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, points, logger)
}
