package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go_wellness_keep/internal/cache"
	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardService インターフェース
type DashboardService interface {
	GetEmojiDashboard(ctx context.Context, userID uuid.UUID, days int) (*model.EmojiDashboard, error)
	GetHRVLineGraph(ctx context.Context, userID uuid.UUID, days int) ([]model.LineGraphPoint, error)
}

type dashboardService struct {
	db          *gorm.DB
	hrvRepo     repository.HRVRepository
	journalRepo repository.JournalRepository
	journalSvc  JournalService
	statsSvc    StatsService
	cache       cache.Cache
	cfg         *config.Config
}

func NewDashboardService(db *gorm.DB, hrvRepo repository.HRVRepository, journalRepo repository.JournalRepository, journalSvc JournalService, statsSvc StatsService, c cache.Cache, cfg *config.Config) DashboardService {
	return &dashboardService{
		db:          db,
		hrvRepo:     hrvRepo,
		journalRepo: journalRepo,
		journalSvc:  journalSvc,
		statsSvc:    statsSvc,
		cache:       c,
		cfg:         cfg,
	}
}

// retryOnDependency は読み取り集計を1回だけバックオフつきで再試行する。
// 依存エラー以外は即座に返す。
func retryOnDependency[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	result, err := fn()
	if err == nil || !errors.Is(err, model.ErrDependency) {
		return result, err
	}
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return result, ctx.Err()
	}
	return fn()
}

// GetEmojiDashboard は絵文字ダッシュボードを合成する。
// 合成結果はキャッシュし、各サブセクションは依存エラー時に1回だけ再試行、
// それでも失敗したらそのセクションだけゼロ値にして全体は失敗させない。
func (s *dashboardService) GetEmojiDashboard(ctx context.Context, userID uuid.UUID, days int) (*model.EmojiDashboard, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if days <= 0 {
		days = s.cfg.App.DashboardDays
	}

	cacheKey := fmt.Sprintf("dashboard:emoji:%s:%d", userID, days)
	var cached model.EmojiDashboard
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		logger.Debug("Emoji dashboard served from cache")
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Cache lookup failed, falling back to store", "error", err)
	}

	start, end := defaultPeriod(days)
	degraded := false

	journal, err := retryOnDependency(ctx, func() (*model.DashboardSummary, error) {
		return s.journalSvc.GetDashboardSummary(ctx, userID, days)
	})
	if err != nil {
		logger.Warn("Journal summary unavailable, zeroing section", "error", err)
		journal = SummarizeEntries(nil)
		degraded = true
	}

	stats, err := retryOnDependency(ctx, func() (*model.PeriodStatistics, error) {
		return s.statsSvc.PeriodStats(ctx, userID, start, end)
	})
	if err != nil {
		logger.Warn("Period statistics unavailable, zeroing section", "error", err)
		stats = &model.PeriodStatistics{AvgStressLevel: 2}
		degraded = true
	}

	dashboard := &model.EmojiDashboard{
		Journal:             *journal,
		WellnessEmoji:       wellnessEmoji(stats.AvgHRV),
		AchievementEmoji:    achievementEmoji(stats.ChallengesCompleted),
		AvgHRV:              stats.AvgHRV,
		ChallengesCompleted: stats.ChallengesCompleted,
		Message:             motivationalMessage(journal.ImprovementPercentage),
	}

	// ゼロ化したセクションを含む結果をTTLいっぱい提供しないよう、劣化時はキャッシュしない
	if degraded {
		logger.Debug("Skipping cache for degraded emoji dashboard")
	} else if err := s.cache.Set(ctx, cacheKey, dashboard, s.cfg.Redis.TTL); err != nil {
		logger.Warn("Failed to cache emoji dashboard", "error", err)
	}

	logger.Info("Successfully composed emoji dashboard", "days", days)
	return dashboard, nil
}

// GetHRVLineGraph は日次のHRV折れ線グラフ用系列 (日付昇順) を返す。
// 各点は日次平均HRV・感情スコア・頻度上位3件の予測/実測感情を持つ。
func (s *dashboardService) GetHRVLineGraph(ctx context.Context, userID uuid.UUID, days int) ([]model.LineGraphPoint, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if days <= 0 {
		days = s.cfg.App.DashboardDays
	}
	start, end := defaultPeriod(days)

	readings, err := retryOnDependency(ctx, func() ([]*model.HRVReading, error) {
		rs, findErr := s.hrvRepo.FindByDateRange(ctx, s.db, userID, start, end)
		if findErr != nil {
			return nil, model.NewAppError("DEPENDENCY_ERROR", "HRV測定の取得に失敗しました。", "", model.ErrDependency)
		}
		return rs, nil
	})
	if err != nil {
		logger.Error("Failed to load HRV readings for line graph", "error", err)
		return nil, err
	}

	return BuildLineGraph(readings), nil
}

// BuildLineGraph は測定群を日付でまとめて折れ線グラフの点列に変換する純粋関数
func BuildLineGraph(readings []*model.HRVReading) []model.LineGraphPoint {
	type bucket struct {
		hrvSum    float64
		count     int
		predicted map[string]int
		actual    map[string]int
	}
	buckets := make(map[string]*bucket)
	for _, r := range readings {
		key := r.Date.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				predicted: make(map[string]int),
				actual:    make(map[string]int),
			}
			buckets[key] = b
		}
		b.hrvSum += r.HRVScore
		b.count++
		if r.PredictedEmotion != "" {
			b.predicted[r.PredictedEmotion]++
		}
		if r.ActualEmotion != nil && *r.ActualEmotion != "" {
			b.actual[*r.ActualEmotion]++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]model.LineGraphPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		avgHRV := b.hrvSum / float64(b.count)
		points = append(points, model.LineGraphPoint{
			Date:              k,
			AvgHRV:            round2(avgHRV),
			EmotionScore:      EmotionScoreFromHRV(avgHRV),
			ReadingCount:      b.count,
			PredictedEmotions: topEmotions(b.predicted, 3),
			ActualEmotions:    topEmotions(b.actual, 3),
		})
	}
	return points
}

// topEmotions は頻度の降順 (同数は名前順) で上位n件を返す
func topEmotions(counts map[string]int, n int) []model.EmotionCount {
	if len(counts) == 0 {
		return nil
	}
	emotions := make([]model.EmotionCount, 0, len(counts))
	for emotion, count := range counts {
		emotions = append(emotions, model.EmotionCount{Emotion: emotion, Count: count})
	}
	sort.Slice(emotions, func(i, j int) bool {
		if emotions[i].Count != emotions[j].Count {
			return emotions[i].Count > emotions[j].Count
		}
		return emotions[i].Emotion < emotions[j].Emotion
	})
	if len(emotions) > n {
		emotions = emotions[:n]
	}
	return emotions
}

// wellnessEmoji は期間平均HRVの帯に応じた絵文字
func wellnessEmoji(avgHRV float64) string {
	switch {
	case avgHRV >= 50:
		return "😌"
	case avgHRV >= 40:
		return "🙂"
	case avgHRV >= 30:
		return "😟"
	default:
		return "😰"
	}
}

// achievementEmoji は期間内のチャレンジ完了数に応じた絵文字
func achievementEmoji(completed int64) string {
	switch {
	case completed >= 5:
		return "🏆"
	case completed >= 3:
		return "🎖️"
	case completed >= 1:
		return "⭐"
	default:
		return "✨"
	}
}

// motivationalMessage は改善率の段階に応じたメッセージ
func motivationalMessage(improvementPct int) string {
	switch {
	case improvementPct >= 70:
		return "素晴らしい進歩です！この調子で続けましょう。"
	case improvementPct >= 40:
		return "順調に成長しています。小さな積み重ねが力になります。"
	default:
		return "今日も一歩ずつ。記録を続けることが最初の成果です。"
	}
}
