package service

import (
	"context"
	"sort"
	"time"

	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StatsService インターフェース
type StatsService interface {
	PeriodStats(ctx context.Context, userID uuid.UUID, start, end time.Time) (*model.PeriodStatistics, error)
	HRVStats(ctx context.Context, userID uuid.UUID, days int) (*model.HRVStatsResponse, error)
	MonthlyImprovement(ctx context.Context, userID uuid.UUID) (*model.MonthlyImprovement, error)
}

type statsService struct {
	db           *gorm.DB
	hrvRepo      repository.HRVRepository
	journalRepo  repository.JournalRepository
	userChalRepo repository.UserChallengeRepository
	cfg          *config.Config
}

func NewStatsService(db *gorm.DB, hrvRepo repository.HRVRepository, journalRepo repository.JournalRepository, userChalRepo repository.UserChallengeRepository, cfg *config.Config) StatsService {
	return &statsService{
		db:           db,
		hrvRepo:      hrvRepo,
		journalRepo:  journalRepo,
		userChalRepo: userChalRepo,
		cfg:          cfg,
	}
}

// PeriodStats は期間 [start, end] (end含む) の集計値を並行に計算する。
// 期間内にHRV測定がないときは avgHRV=0 / avgStressLevel=2 (moderate基準) を
// 既定値とし、後段の除算を安全に保つ。
func (s *statsService) PeriodStats(ctx context.Context, userID uuid.UUID, start, end time.Time) (*model.PeriodStatistics, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	stats := &model.PeriodStatistics{AvgStressLevel: 2}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		readings, err := s.hrvRepo.FindByDateRange(gctx, s.db, userID, start, end)
		if err != nil {
			return err
		}
		stats.HRVReadings = int64(len(readings))
		if len(readings) == 0 {
			return nil
		}
		var hrvSum, stressSum float64
		for _, r := range readings {
			hrvSum += r.HRVScore
			stressSum += model.StressLevelValues[r.StressLevel]
		}
		stats.AvgHRV = round2(hrvSum / float64(len(readings)))
		stats.AvgStressLevel = round2(stressSum / float64(len(readings)))
		return nil
	})

	g.Go(func() error {
		count, err := s.userChalRepo.CountCompletedInRange(gctx, s.db, userID, start, end)
		if err != nil {
			return err
		}
		stats.ChallengesCompleted = count
		return nil
	})

	g.Go(func() error {
		count, err := s.journalRepo.CountInRange(gctx, s.db, userID, start, end)
		if err != nil {
			return err
		}
		stats.JournalEntries = count
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to aggregate period statistics", "error", err)
		return nil, model.NewAppError("DEPENDENCY_ERROR", "期間統計の集計に失敗しました。", "", model.ErrDependency)
	}

	return stats, nil
}

// HRVStats は直近days日間をその直前の同じ長さの期間と比較し、
// 日次平均HRV系列の傾向分類も合わせて返す。
func (s *statsService) HRVStats(ctx context.Context, userID uuid.UUID, days int) (*model.HRVStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if days <= 0 {
		days = s.cfg.App.DashboardDays
	}
	currentStart, currentEnd := defaultPeriod(days)
	previousStart := currentStart.AddDate(0, 0, -days)
	// 範囲クエリは両端含みなので、直前期間の終端は現期間の開始と重ねない
	previousEnd := currentStart.Add(-time.Nanosecond)

	var current, previous *model.PeriodStatistics
	var dailyAvgs []float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.PeriodStats(gctx, userID, currentStart, currentEnd)
		if err != nil {
			return err
		}
		current = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.PeriodStats(gctx, userID, previousStart, previousEnd)
		if err != nil {
			return err
		}
		previous = stats
		return nil
	})
	g.Go(func() error {
		readings, err := s.hrvRepo.FindByDateRange(gctx, s.db, userID, currentStart, currentEnd)
		if err != nil {
			return err
		}
		dailyAvgs = dailyHRVAverages(readings)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to compute HRV statistics", "error", err)
		return nil, model.NewAppError("DEPENDENCY_ERROR", "HRV統計の計算に失敗しました。", "", model.ErrDependency)
	}

	return &model.HRVStatsResponse{
		PeriodDays:  days,
		Current:     *current,
		Previous:    *previous,
		Improvement: CalculateImprovement(*previous, *current),
		Trend:       ClassifyHRVTrend(dailyAvgs),
	}, nil
}

// MonthlyImprovement は当月 (1日〜今) と前月 (丸ごと) を比較する
func (s *statsService) MonthlyImprovement(ctx context.Context, userID uuid.UUID) (*model.MonthlyImprovement, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	now := time.Now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previousStart := currentStart.AddDate(0, -1, 0)
	// 月初ちょうどの記録を両方の月に数えないよう、前月の終端を1ns手前にする
	previousEnd := currentStart.Add(-time.Nanosecond)

	var current, previous *model.PeriodStatistics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.PeriodStats(gctx, userID, currentStart, now)
		if err != nil {
			return err
		}
		current = stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.PeriodStats(gctx, userID, previousStart, previousEnd)
		if err != nil {
			return err
		}
		previous = stats
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to compute monthly improvement", "error", err)
		return nil, model.NewAppError("DEPENDENCY_ERROR", "月次比較の計算に失敗しました。", "", model.ErrDependency)
	}

	return &model.MonthlyImprovement{
		CurrentMonth:  currentStart.Format("2006-01"),
		PreviousMonth: previousStart.Format("2006-01"),
		Current:       *current,
		Previous:      *previous,
		Improvement:   CalculateImprovement(*previous, *current),
	}, nil
}

// dailyHRVAverages は測定群を日付キーでまとめ、日付昇順の日次平均HRV系列を返す
func dailyHRVAverages(readings []*model.HRVReading) []float64 {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, r := range readings {
		key := r.Date.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += r.HRVScore
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	avgs := make([]float64, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		avgs = append(avgs, b.sum/float64(b.count))
	}
	return avgs
}
