package service

import (
	"context"
	"errors"
	"time"

	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeService インターフェース
type ChallengeService interface {
	ListChallenges(ctx context.Context, q *model.ChallengeListQuery) (*model.ChallengeListResponse, error)
	GetChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*model.ChallengeDetailResponse, error)
	StartChallenge(ctx context.Context, userID, challengeID uuid.UUID, req *model.StartChallengeRequest) (*model.UserChallenge, error)
	CompleteChallenge(ctx context.Context, userID, challengeID uuid.UUID, req *model.CompleteChallengeRequest) (*model.UserChallenge, error)
	SkipChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*model.UserChallenge, error)
	ListUserChallenges(ctx context.Context, userID uuid.UUID, status model.ChallengeStatus, limit, offset int) (*model.UserChallengeListResponse, error)
}

type challengeService struct {
	db            *gorm.DB
	challengeRepo repository.ChallengeRepository
	userChalRepo  repository.UserChallengeRepository
	cfg           *config.Config
}

func NewChallengeService(db *gorm.DB, challengeRepo repository.ChallengeRepository, userChalRepo repository.UserChallengeRepository, cfg *config.Config) ChallengeService {
	return &challengeService{
		db:            db,
		challengeRepo: challengeRepo,
		userChalRepo:  userChalRepo,
		cfg:           cfg,
	}
}

func (s *challengeService) ListChallenges(ctx context.Context, q *model.ChallengeListQuery) (*model.ChallengeListResponse, error) {
	logger := middleware.GetLogger(ctx)

	if q.Limit <= 0 {
		q.Limit = s.cfg.App.DefaultLimit
	}
	if q.Limit > s.cfg.App.MaxLimit {
		q.Limit = s.cfg.App.MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	challenges, total, err := s.challengeRepo.List(ctx, s.db, q)
	if err != nil {
		logger.Error("Failed to list challenges from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ一覧の取得に失敗しました。", "", err)
	}

	return &model.ChallengeListResponse{
		Challenges: challenges,
		Pagination: model.Pagination{
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
			HasMore: int64(q.Offset+len(challenges)) < total,
		},
	}, nil
}

func (s *challengeService) GetChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*model.ChallengeDetailResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "challenge_id", challengeID)

	challenge, err := s.challengeRepo.FindByID(ctx, s.db, challengeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "チャレンジが見つかりません。", "", err)
		}
		logger.Error("Failed to find challenge from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの取得に失敗しました。", "", err)
	}

	// 進捗は未着手なら存在しないのでNotFoundは正常
	progress, err := s.userChalRepo.FindByUserAndChallenge(ctx, s.db, userID, challengeID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to find user progress from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ進捗の取得に失敗しました。", "", err)
	}

	return &model.ChallengeDetailResponse{
		Challenge:    challenge,
		UserProgress: progress,
	}, nil
}

// StartChallenge は状態機械の start 遷移。
//   - in_progress のときはエラー (黙殺しない)
//   - completed のときは再開: completed_at と user_response をクリア
//   - それ以外 (not_started / skipped / レコードなし) は開始
func (s *challengeService) StartChallenge(ctx context.Context, userID, challengeID uuid.UUID, req *model.StartChallengeRequest) (*model.UserChallenge, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "challenge_id", challengeID)

	var result *model.UserChallenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, findErr := s.challengeRepo.FindByID(ctx, tx, challengeID); findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "チャレンジが見つかりません。", "", findErr)
			}
			logger.Error("Error finding challenge in transaction", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの確認中にエラーが発生しました。", "", findErr)
		}

		uc, findErr := s.userChalRepo.FindByUserAndChallenge(ctx, tx, userID, challengeID)
		if findErr != nil && !errors.Is(findErr, model.ErrNotFound) {
			logger.Error("Error finding user challenge in transaction", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ進捗の確認中にエラーが発生しました。", "", findErr)
		}

		now := time.Now()
		if uc == nil {
			uc = &model.UserChallenge{
				UserChallengeID: uuid.New(),
				UserID:          userID,
				ChallengeID:     challengeID,
				Status:          model.ChallengeInProgress,
				StartedAt:       &now,
				HRVBefore:       req.HRVBefore,
			}
			applyHRVImprovement(uc)
			if createErr := s.userChalRepo.Create(ctx, tx, uc); createErr != nil {
				if errors.Is(createErr, model.ErrConflict) {
					return model.NewAppError("CONFLICT", "チャレンジはすでに登録されています。", "", createErr)
				}
				logger.Error("Error creating user challenge", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの開始に失敗しました。", "", createErr)
			}
			result = uc
			return nil
		}

		switch uc.Status {
		case model.ChallengeInProgress:
			return model.NewAppError("INVALID_STATE", "チャレンジはすでに進行中です。", "", model.ErrInvalidState)
		case model.ChallengeCompleted:
			// 再開: 完了時の記録をクリアする
			uc.Status = model.ChallengeInProgress
			uc.StartedAt = &now
			uc.CompletedAt = nil
			uc.UserResponse = ""
		default:
			uc.Status = model.ChallengeInProgress
			uc.StartedAt = &now
		}
		if req.HRVBefore != nil {
			uc.HRVBefore = req.HRVBefore
		}
		applyHRVImprovement(uc)

		if saveErr := s.userChalRepo.Save(ctx, tx, uc); saveErr != nil {
			logger.Error("Error saving user challenge", "error", saveErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの開始に失敗しました。", "", saveErr)
		}
		result = uc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully started challenge", "user_challenge_id", result.UserChallengeID)
	return result, nil
}

// CompleteChallenge は状態機械の complete 遷移。in_progress 以外からはエラー。
// 連続回数は同一ユーザーの直近の完了レコードから引き継ぐため、
// 同時完了による二重カウントを避けるようトランザクション内で読み書きする。
func (s *challengeService) CompleteChallenge(ctx context.Context, userID, challengeID uuid.UUID, req *model.CompleteChallengeRequest) (*model.UserChallenge, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "challenge_id", challengeID)

	var result *model.UserChallenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uc, findErr := s.userChalRepo.FindByUserAndChallenge(ctx, tx, userID, challengeID)
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "チャレンジが開始されていません。", "", findErr)
			}
			logger.Error("Error finding user challenge in transaction", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ進捗の確認中にエラーが発生しました。", "", findErr)
		}

		if uc.Status != model.ChallengeInProgress {
			return model.NewAppError("INVALID_STATE", "チャレンジは進行中ではありません。", "", model.ErrInvalidState)
		}

		// 直近の完了レコードの連続回数を引き継ぐ (なければ1から)
		streak := 1
		latest, latestErr := s.userChalRepo.LatestCompleted(ctx, tx, userID)
		if latestErr != nil && !errors.Is(latestErr, model.ErrNotFound) {
			logger.Error("Error finding latest completed challenge", "error", latestErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "連続回数の計算中にエラーが発生しました。", "", latestErr)
		}
		if latest != nil {
			streak = latest.CompletionStreak + 1
		}

		now := time.Now()
		uc.Status = model.ChallengeCompleted
		uc.CompletedAt = &now
		uc.UserResponse = req.UserResponse
		uc.Rating = req.Rating
		uc.Feedback = req.Feedback
		if req.HRVAfter != nil {
			uc.HRVAfter = req.HRVAfter
		}
		uc.CompletionStreak = streak
		applyHRVImprovement(uc)

		if saveErr := s.userChalRepo.Save(ctx, tx, uc); saveErr != nil {
			logger.Error("Error saving completed challenge", "error", saveErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの完了に失敗しました。", "", saveErr)
		}
		result = uc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully completed challenge",
		"user_challenge_id", result.UserChallengeID,
		"completion_streak", result.CompletionStreak,
	)
	return result, nil
}

// SkipChallenge は任意の状態から skipped に遷移できる (前提条件なし)
func (s *challengeService) SkipChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*model.UserChallenge, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "challenge_id", challengeID)

	var result *model.UserChallenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uc, findErr := s.userChalRepo.FindByUserAndChallenge(ctx, tx, userID, challengeID)
		if findErr != nil && !errors.Is(findErr, model.ErrNotFound) {
			logger.Error("Error finding user challenge in transaction", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ進捗の確認中にエラーが発生しました。", "", findErr)
		}

		if uc == nil {
			if _, chalErr := s.challengeRepo.FindByID(ctx, tx, challengeID); chalErr != nil {
				if errors.Is(chalErr, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "チャレンジが見つかりません。", "", chalErr)
				}
				logger.Error("Error finding challenge in transaction", "error", chalErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジの確認中にエラーが発生しました。", "", chalErr)
			}
			uc = &model.UserChallenge{
				UserChallengeID: uuid.New(),
				UserID:          userID,
				ChallengeID:     challengeID,
				Status:          model.ChallengeSkipped,
			}
			if createErr := s.userChalRepo.Create(ctx, tx, uc); createErr != nil {
				logger.Error("Error creating skipped challenge", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジのスキップに失敗しました。", "", createErr)
			}
			result = uc
			return nil
		}

		uc.Status = model.ChallengeSkipped
		if saveErr := s.userChalRepo.Save(ctx, tx, uc); saveErr != nil {
			logger.Error("Error saving skipped challenge", "error", saveErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジのスキップに失敗しました。", "", saveErr)
		}
		result = uc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully skipped challenge", "user_challenge_id", result.UserChallengeID)
	return result, nil
}

func (s *challengeService) ListUserChallenges(ctx context.Context, userID uuid.UUID, status model.ChallengeStatus, limit, offset int) (*model.UserChallengeListResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if limit <= 0 {
		limit = s.cfg.App.DefaultLimit
	}
	if limit > s.cfg.App.MaxLimit {
		limit = s.cfg.App.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	ucs, total, err := s.userChalRepo.FindByUser(ctx, s.db, userID, status, limit, offset)
	if err != nil {
		logger.Error("Failed to find user challenges from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ一覧の取得に失敗しました。", "", err)
	}

	stats, err := s.userChalRepo.CountByStatus(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to count user challenges by status", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "チャレンジ統計の取得に失敗しました。", "", err)
	}

	return &model.UserChallengeListResponse{
		UserChallenges: ucs,
		Statistics:     stats,
		Pagination: model.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+len(ucs)) < total,
		},
	}, nil
}

// applyHRVImprovement は hrv_before / hrv_after が揃っているとき
// 差分を再計算する (揃っていなければ変更しない)
func applyHRVImprovement(uc *model.UserChallenge) {
	if uc.HRVBefore != nil && uc.HRVAfter != nil {
		improvement := *uc.HRVAfter - *uc.HRVBefore
		uc.HRVImprovement = &improvement
	}
}
