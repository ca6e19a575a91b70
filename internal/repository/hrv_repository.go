//go:generate mockery --name HRVRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HRVRepository はHRV測定の永続化操作。測定は作成後不変のため更新系はない。
type HRVRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reading *model.HRVReading) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, q model.HRVListQuery) ([]*model.HRVReading, int64, error)
	FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.HRVReading, error)
}

type gormHRVRepository struct{}

func NewGormHRVRepository() HRVRepository {
	return &gormHRVRepository{}
}

func (r *gormHRVRepository) Create(ctx context.Context, tx *gorm.DB, reading *model.HRVReading) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(reading)
	if result.Error != nil {
		logger.Error("Error creating HRV reading in DB",
			"error", result.Error,
			"user_id", reading.UserID.String(),
		)
		return fmt.Errorf("gormHRVRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormHRVRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, q model.HRVListQuery) ([]*model.HRVReading, int64, error) {
	logger := middleware.GetLogger(ctx)
	var readings []*model.HRVReading
	var total int64

	query := db.WithContext(ctx).Model(&model.HRVReading{}).Where("user_id = ?", userID)
	if q.StressLevel != nil {
		query = query.Where("stress_level = ?", *q.StressLevel)
	}
	if q.MeasurementContext != nil {
		query = query.Where("measurement_context = ?", *q.MeasurementContext)
	}
	if q.StartDate != nil {
		query = query.Where("date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("date <= ?", *q.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting HRV readings in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormHRVRepository.FindByUser: %w", err)
	}

	result := query.Order("date DESC").Limit(q.Limit).Offset(q.Offset).Find(&readings)
	if result.Error != nil {
		logger.Error("Error finding HRV readings in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormHRVRepository.FindByUser: %w", result.Error)
	}
	return readings, total, nil
}

// FindByDateRange は期間内 (両端含む) の測定を日付昇順で返す。集計系の共通入力。
func (r *gormHRVRepository) FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.HRVReading, error) {
	logger := middleware.GetLogger(ctx)
	var readings []*model.HRVReading
	result := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&readings)
	if result.Error != nil {
		logger.Error("Error finding HRV readings by date range in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormHRVRepository.FindByDateRange: %w", result.Error)
	}
	return readings, nil
}
