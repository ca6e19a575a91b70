//go:generate mockery --name ChallengeRepository --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name UserChallengeRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeRepository はチャレンジカタログの参照操作
type ChallengeRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, challengeID uuid.UUID) (*model.Challenge, error)
	List(ctx context.Context, db *gorm.DB, q *model.ChallengeListQuery) ([]*model.Challenge, int64, error)
	Create(ctx context.Context, tx *gorm.DB, challenge *model.Challenge) error
}

// UserChallengeRepository はユーザーごとのチャレンジ進捗の永続化操作
type UserChallengeRepository interface {
	FindByUserAndChallenge(ctx context.Context, db *gorm.DB, userID, challengeID uuid.UUID) (*model.UserChallenge, error)
	Create(ctx context.Context, tx *gorm.DB, uc *model.UserChallenge) error
	Save(ctx context.Context, tx *gorm.DB, uc *model.UserChallenge) error
	LatestCompleted(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserChallenge, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, status model.ChallengeStatus, limit, offset int) ([]*model.UserChallenge, int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, userID uuid.UUID) (map[string]int64, error)
	CountCompletedInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error)
}

type gormChallengeRepository struct{}

func NewGormChallengeRepository() ChallengeRepository {
	return &gormChallengeRepository{}
}

func (r *gormChallengeRepository) FindByID(ctx context.Context, db *gorm.DB, challengeID uuid.UUID) (*model.Challenge, error) {
	logger := middleware.GetLogger(ctx)
	var challenge model.Challenge
	result := db.WithContext(ctx).First(&challenge, "challenge_id = ?", challengeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding challenge by ID in DB",
			"error", result.Error,
			"challenge_id", challengeID.String(),
		)
		return nil, fmt.Errorf("gormChallengeRepository.FindByID: %w", result.Error)
	}
	return &challenge, nil
}

func (r *gormChallengeRepository) List(ctx context.Context, db *gorm.DB, q *model.ChallengeListQuery) ([]*model.Challenge, int64, error) {
	logger := middleware.GetLogger(ctx)
	var challenges []*model.Challenge
	var total int64

	query := db.WithContext(ctx).Model(&model.Challenge{}).Where("is_active = ?", true)
	if q.Category != nil {
		query = query.Where("category = ?", *q.Category)
	}
	if q.DifficultyLevel != nil {
		query = query.Where("difficulty_level = ?", *q.DifficultyLevel)
	}
	if q.Frequency != nil {
		query = query.Where("frequency = ?", *q.Frequency)
	}
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting challenges in DB", "error", err)
		return nil, 0, fmt.Errorf("gormChallengeRepository.List: %w", err)
	}

	result := query.Order("created_at ASC").Limit(q.Limit).Offset(q.Offset).Find(&challenges)
	if result.Error != nil {
		logger.Error("Error listing challenges in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormChallengeRepository.List: %w", result.Error)
	}
	return challenges, total, nil
}

func (r *gormChallengeRepository) Create(ctx context.Context, tx *gorm.DB, challenge *model.Challenge) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(challenge)
	if result.Error != nil {
		logger.Error("Error creating challenge in DB", "error", result.Error)
		return fmt.Errorf("gormChallengeRepository.Create: %w", result.Error)
	}
	return nil
}

type gormUserChallengeRepository struct{}

func NewGormUserChallengeRepository() UserChallengeRepository {
	return &gormUserChallengeRepository{}
}

func (r *gormUserChallengeRepository) FindByUserAndChallenge(ctx context.Context, db *gorm.DB, userID, challengeID uuid.UUID) (*model.UserChallenge, error) {
	logger := middleware.GetLogger(ctx)
	var uc model.UserChallenge
	result := db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&uc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user challenge in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"challenge_id", challengeID.String(),
		)
		return nil, fmt.Errorf("gormUserChallengeRepository.FindByUserAndChallenge: %w", result.Error)
	}
	return &uc, nil
}

func (r *gormUserChallengeRepository) Create(ctx context.Context, tx *gorm.DB, uc *model.UserChallenge) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(uc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating user challenge in DB",
			"error", result.Error,
			"user_id", uc.UserID.String(),
		)
		return fmt.Errorf("gormUserChallengeRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserChallengeRepository) Save(ctx context.Context, tx *gorm.DB, uc *model.UserChallenge) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(uc)
	if result.Error != nil {
		logger.Error("Error saving user challenge in DB",
			"error", result.Error,
			"user_challenge_id", uc.UserChallengeID.String(),
		)
		return fmt.Errorf("gormUserChallengeRepository.Save: %w", result.Error)
	}
	return nil
}

// LatestCompleted は完了日時が最新の完了済みチャレンジを返す (連続回数計算用)
func (r *gormUserChallengeRepository) LatestCompleted(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserChallenge, error) {
	logger := middleware.GetLogger(ctx)
	var uc model.UserChallenge
	result := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ChallengeCompleted).
		Order("completed_at DESC").
		First(&uc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding latest completed challenge in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserChallengeRepository.LatestCompleted: %w", result.Error)
	}
	return &uc, nil
}

func (r *gormUserChallengeRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, status model.ChallengeStatus, limit, offset int) ([]*model.UserChallenge, int64, error) {
	logger := middleware.GetLogger(ctx)
	var ucs []*model.UserChallenge
	var total int64

	query := db.WithContext(ctx).Model(&model.UserChallenge{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting user challenges in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormUserChallengeRepository.FindByUser: %w", err)
	}

	result := query.Preload("Challenge").
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&ucs)
	if result.Error != nil {
		logger.Error("Error finding user challenges in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormUserChallengeRepository.FindByUser: %w", result.Error)
	}
	return ucs, total, nil
}

func (r *gormUserChallengeRepository) CountByStatus(ctx context.Context, db *gorm.DB, userID uuid.UUID) (map[string]int64, error) {
	logger := middleware.GetLogger(ctx)
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	result := db.WithContext(ctx).Model(&model.UserChallenge{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error counting user challenges by status in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserChallengeRepository.CountByStatus: %w", result.Error)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *gormUserChallengeRepository) CountCompletedInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.UserChallenge{}).
		Where("user_id = ? AND status = ? AND completed_at >= ? AND completed_at <= ?",
			userID, model.ChallengeCompleted, start, end).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting completed challenges in range in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormUserChallengeRepository.CountCompletedInRange: %w", result.Error)
	}
	return count, nil
}
