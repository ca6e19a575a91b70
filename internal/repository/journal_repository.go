//go:generate mockery --name JournalRepository --output ./mocks --outpkg mocks --case=underscore
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

// JournalRepository はジャーナルエントリの永続化操作
type JournalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.JournalEntry) error
	FindByID(ctx context.Context, db *gorm.DB, userID, entryID uuid.UUID) (*model.JournalEntry, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]*model.JournalEntry, int64, error)
	FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.JournalEntry, error)
	Save(ctx context.Context, tx *gorm.DB, entry *model.JournalEntry) error
	Delete(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) error
	CountInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error)
}

type gormJournalRepository struct{}

func NewGormJournalRepository() JournalRepository {
	return &gormJournalRepository{}
}

func (r *gormJournalRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.JournalEntry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		logger.Error("Error creating journal entry in DB",
			"error", result.Error,
			"user_id", entry.UserID.String(),
		)
		return fmt.Errorf("gormJournalRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormJournalRepository) FindByID(ctx context.Context, db *gorm.DB, userID, entryID uuid.UUID) (*model.JournalEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.JournalEntry
	result := db.WithContext(ctx).Where("user_id = ? AND entry_id = ?", userID, entryID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding journal entry by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"entry_id", entryID.String(),
		)
		return nil, fmt.Errorf("gormJournalRepository.FindByID: %w", result.Error)
	}
	return &entry, nil
}

func (r *gormJournalRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]*model.JournalEntry, int64, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.JournalEntry
	var total int64

	query := db.WithContext(ctx).Model(&model.JournalEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting journal entries in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormJournalRepository.FindByUser: %w", err)
	}

	result := query.Order("date DESC").Limit(limit).Offset(offset).Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding journal entries in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormJournalRepository.FindByUser: %w", result.Error)
	}
	return entries, total, nil
}

// FindByDateRange は期間内のエントリを新しい順で返す (サマリー計算用)
func (r *gormJournalRepository) FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.JournalEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.JournalEntry
	result := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding journal entries by date range in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormJournalRepository.FindByDateRange: %w", result.Error)
	}
	return entries, nil
}

func (r *gormJournalRepository) Save(ctx context.Context, tx *gorm.DB, entry *model.JournalEntry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(entry)
	if result.Error != nil {
		logger.Error("Error saving journal entry in DB",
			"error", result.Error,
			"entry_id", entry.EntryID.String(),
		)
		return fmt.Errorf("gormJournalRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *gormJournalRepository) Delete(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ? AND entry_id = ?", userID, entryID).Delete(&model.JournalEntry{})
	if result.Error != nil {
		logger.Error("Error deleting journal entry in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"entry_id", entryID.String(),
		)
		return fmt.Errorf("gormJournalRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormJournalRepository) CountInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.JournalEntry{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting journal entries in range in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormJournalRepository.CountInRange: %w", result.Error)
	}
	return count, nil
}
