// internal/handlers/hrv_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/service"
	"go_wellness_keep/internal/webutil"
)

type HRVHandler struct {
	hrvService   service.HRVService
	statsService service.StatsService
	logger       *slog.Logger
}

func NewHRVHandler(hrvService service.HRVService, statsService service.StatsService, logger *slog.Logger) *HRVHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HRVHandler{
		hrvService:   hrvService,
		statsService: statsService,
		logger:       logger,
	}
}

// LogReading は新しいHRV測定を登録するハンドラ
func (h *HRVHandler) LogReading(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "LogReading"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.LogHRVRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	reading, err := h.hrvService.LogReading(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error logging HRV reading in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("HRV reading logged successfully", slog.String("reading_id", reading.ReadingID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, reading, logger)
}

// ListReadings はHRV測定の一覧を取得するハンドラ
func (h *HRVHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListReadings"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	startDate, err := webutil.QueryDate(r, "start_date")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	endDate, err := webutil.QueryDate(r, "end_date")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	q := model.HRVListQuery{
		StressLevel:        webutil.QueryString(r, "stress_level"),
		MeasurementContext: webutil.QueryString(r, "measurement_context"),
		StartDate:          startDate,
		EndDate:            endDate,
		Limit:              webutil.QueryInt(r, "limit", 0),
		Offset:             webutil.QueryInt(r, "offset", 0),
	}

	resp, err := h.hrvService.ListReadings(r.Context(), userID, q)
	if err != nil {
		logger.Error("Error listing HRV readings in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Readings == nil {
		resp.Readings = []*model.HRVReading{}
	}
	logger.Info("HRV readings listed successfully", slog.Int("count", len(resp.Readings)))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetStats は現期間と直前期間の比較統計を取得するハンドラ
func (h *HRVHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days := webutil.QueryInt(r, "days", 0)

	stats, err := h.statsService.HRVStats(r.Context(), userID, days)
	if err != nil {
		logger.Error("Error computing HRV stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("HRV stats computed successfully", slog.Int("period_days", stats.PeriodDays))
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
