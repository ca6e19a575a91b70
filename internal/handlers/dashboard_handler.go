// internal/handlers/dashboard_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/service"
	"go_wellness_keep/internal/webutil"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	statsService     service.StatsService
	logger           *slog.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, statsService service.StatsService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		statsService:     statsService,
		logger:           logger,
	}
}

// GetEmojiDashboard は絵文字ダッシュボードを取得するハンドラ
func (h *DashboardHandler) GetEmojiDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEmojiDashboard"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days := webutil.QueryInt(r, "days", 0)

	dashboard, err := h.dashboardService.GetEmojiDashboard(r.Context(), userID, days)
	if err != nil {
		logger.Error("Error composing emoji dashboard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}

// GetLineGraph はHRV折れ線グラフ用の日次系列を取得するハンドラ
func (h *DashboardHandler) GetLineGraph(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLineGraph"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days := webutil.QueryInt(r, "days", 0)

	points, err := h.dashboardService.GetHRVLineGraph(r.Context(), userID, days)
	if err != nil {
		logger.Error("Error building HRV line graph in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if points == nil {
		points = []model.LineGraphPoint{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, points, logger)
}

// GetMonthlyImprovement は当月と前月の比較を取得するハンドラ
func (h *DashboardHandler) GetMonthlyImprovement(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMonthlyImprovement"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	improvement, err := h.statsService.MonthlyImprovement(r.Context(), userID)
	if err != nil {
		logger.Error("Error computing monthly improvement in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, improvement, logger)
}
