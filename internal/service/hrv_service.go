package service

import (
	"context"
	"time"

	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HRVService インターフェース
type HRVService interface {
	LogReading(ctx context.Context, userID uuid.UUID, req *model.LogHRVRequest) (*model.HRVReading, error)
	ListReadings(ctx context.Context, userID uuid.UUID, q model.HRVListQuery) (*model.HRVListResponse, error)
}

type hrvService struct {
	db      *gorm.DB
	hrvRepo repository.HRVRepository
	pick    EmotionPicker
	cfg     *config.Config
}

func NewHRVService(db *gorm.DB, hrvRepo repository.HRVRepository, pick EmotionPicker, cfg *config.Config) HRVService {
	return &hrvService{
		db:      db,
		hrvRepo: hrvRepo,
		pick:    pick,
		cfg:     cfg,
	}
}

// LogReading はHRV測定を登録する。導出フィールド (stress_level /
// recovery_status / predicted_emotion) は未指定のときだけ保存前に導出する。
// 主記録の書き込み失敗はリトライせず、そのまま呼び出し元に返す。
func (s *hrvService) LogReading(ctx context.Context, userID uuid.UUID, req *model.LogHRVRequest) (*model.HRVReading, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	reading := &model.HRVReading{
		ReadingID:          uuid.New(),
		UserID:             userID,
		HRVScore:           *req.HRVScore,
		RMSSD:              req.RMSSD,
		HeartRate:          req.HeartRate,
		ActualEmotion:      req.ActualEmotion,
		EmotionIntensity:   req.EmotionIntensity,
		MeasurementContext: req.MeasurementContext,
		ExternalFactors:    req.ExternalFactors,
		Notes:              req.Notes,
	}
	if req.Date != nil {
		reading.Date = *req.Date
	}
	if req.StressLevel != nil {
		reading.StressLevel = model.StressLevel(*req.StressLevel)
	}
	if req.RecoveryStatus != nil {
		reading.RecoveryStatus = model.RecoveryStatus(*req.RecoveryStatus)
	}
	if req.PredictedEmotion != nil {
		reading.PredictedEmotion = *req.PredictedEmotion
	}

	ApplyDerivedFields(reading, s.pick)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := s.hrvRepo.Create(ctx, tx, reading); createErr != nil {
			logger.Error("Error creating HRV reading", "error", createErr)
			return model.NewAppError("DEPENDENCY_ERROR", "HRV測定の保存に失敗しました。", "", model.ErrDependency)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully logged HRV reading",
		"reading_id", reading.ReadingID,
		"hrv_score", reading.HRVScore,
		"stress_level", reading.StressLevel,
	)
	return reading, nil
}

func (s *hrvService) ListReadings(ctx context.Context, userID uuid.UUID, q model.HRVListQuery) (*model.HRVListResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if q.Limit <= 0 {
		q.Limit = s.cfg.App.DefaultLimit
	}
	if q.Limit > s.cfg.App.MaxLimit {
		q.Limit = s.cfg.App.MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, model.NewAppError("INVALID_INPUT", "終了日は開始日より後でなければなりません。", "end_date", model.ErrInvalidInput)
	}

	readings, total, err := s.hrvRepo.FindByUser(ctx, s.db, userID, q)
	if err != nil {
		logger.Error("Failed to find HRV readings from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "HRV測定一覧の取得に失敗しました。", "", err)
	}

	logger.Info("Successfully retrieved HRV readings", "count", len(readings), "total", total)
	return &model.HRVListResponse{
		Readings: readings,
		Pagination: model.Pagination{
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
			HasMore: int64(q.Offset+len(readings)) < total,
		},
	}, nil
}

// 期間指定のデフォルト (直近N日、endは今日を含む)
func defaultPeriod(days int) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return start, end
}
