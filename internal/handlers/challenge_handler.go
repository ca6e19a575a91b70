// internal/handlers/challenge_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/service"
	"go_wellness_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	service service.ChallengeService
	logger  *slog.Logger
}

func NewChallengeHandler(s service.ChallengeService, logger *slog.Logger) *ChallengeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChallengeHandler{
		service: s,
		logger:  logger,
	}
}

// ListChallenges は有効なチャレンジカタログの一覧を取得するハンドラ
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListChallenges"))

	if _, ok := authUserID(w, r, logger); !ok {
		return
	}

	q := &model.ChallengeListQuery{
		Category:        webutil.QueryString(r, "category"),
		DifficultyLevel: webutil.QueryString(r, "difficulty_level"),
		Frequency:       webutil.QueryString(r, "frequency"),
		Limit:           webutil.QueryInt(r, "limit", 0),
		Offset:          webutil.QueryInt(r, "offset", 0),
	}

	resp, err := h.service.ListChallenges(r.Context(), q)
	if err != nil {
		logger.Error("Error listing challenges in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Challenges == nil {
		resp.Challenges = []*model.Challenge{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetChallenge はチャレンジ詳細と呼び出しユーザーの進捗を取得するハンドラ
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetChallenge"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	challengeID, ok := pathUUID(w, logger, chi.URLParam(r, "challengeID"), "challenge_id")
	if !ok {
		return
	}

	detail, err := h.service.GetChallenge(r.Context(), userID, challengeID)
	if err != nil {
		logger.Error("Error getting challenge in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, detail, logger)
}

// StartChallenge はチャレンジを開始 (または再開) するハンドラ
func (h *ChallengeHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartChallenge"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	challengeID, ok := pathUUID(w, logger, chi.URLParam(r, "challengeID"), "challenge_id")
	if !ok {
		return
	}

	// ボディは任意 (hrv_before だけ)
	req := &model.StartChallengeRequest{}
	if r.ContentLength > 0 {
		if !decodeAndValidate(w, r, logger, req) {
			return
		}
	}

	uc, err := h.service.StartChallenge(r.Context(), userID, challengeID, req)
	if err != nil {
		logger.Warn("Error starting challenge in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Challenge started successfully", slog.String("user_challenge_id", uc.UserChallengeID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, uc, logger)
}

// CompleteChallenge は進行中のチャレンジを完了するハンドラ
func (h *ChallengeHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteChallenge"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	challengeID, ok := pathUUID(w, logger, chi.URLParam(r, "challengeID"), "challenge_id")
	if !ok {
		return
	}

	req := &model.CompleteChallengeRequest{}
	if r.ContentLength > 0 {
		if !decodeAndValidate(w, r, logger, req) {
			return
		}
	}

	uc, err := h.service.CompleteChallenge(r.Context(), userID, challengeID, req)
	if err != nil {
		logger.Warn("Error completing challenge in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Challenge completed successfully",
		slog.String("user_challenge_id", uc.UserChallengeID.String()),
		slog.Int("completion_streak", uc.CompletionStreak),
	)
	webutil.RespondWithJSON(w, http.StatusOK, uc, logger)
}

// SkipChallenge はチャレンジをスキップするハンドラ
func (h *ChallengeHandler) SkipChallenge(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SkipChallenge"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	challengeID, ok := pathUUID(w, logger, chi.URLParam(r, "challengeID"), "challenge_id")
	if !ok {
		return
	}

	uc, err := h.service.SkipChallenge(r.Context(), userID, challengeID)
	if err != nil {
		logger.Warn("Error skipping challenge in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Challenge skipped successfully", slog.String("user_challenge_id", uc.UserChallengeID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, uc, logger)
}

// ListUserChallenges は呼び出しユーザーのチャレンジ進捗一覧を取得するハンドラ
func (h *ChallengeHandler) ListUserChallenges(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListUserChallenges"))

	userID, ok := authUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	status := model.ChallengeStatus(r.URL.Query().Get("status"))
	limit := webutil.QueryInt(r, "limit", 0)
	offset := webutil.QueryInt(r, "offset", 0)

	resp, err := h.service.ListUserChallenges(r.Context(), userID, status, limit, offset)
	if err != nil {
		logger.Error("Error listing user challenges in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.UserChallenges == nil {
		resp.UserChallenges = []*model.UserChallenge{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
