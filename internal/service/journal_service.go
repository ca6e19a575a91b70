package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalService インターフェース
type JournalService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, req *model.CreateJournalRequest) (*model.JournalEntry, error)
	GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*model.JournalEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.JournalEntry, *model.Pagination, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *model.UpdateJournalRequest) (*model.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	GetDashboardSummary(ctx context.Context, userID uuid.UUID, days int) (*model.DashboardSummary, error)
	GetMoodGraph(ctx context.Context, userID uuid.UUID, days int) ([]model.MoodGraphPoint, error)
}

type journalService struct {
	db          *gorm.DB
	journalRepo repository.JournalRepository
	cfg         *config.Config
}

func NewJournalService(db *gorm.DB, journalRepo repository.JournalRepository, cfg *config.Config) JournalService {
	return &journalService{
		db:          db,
		journalRepo: journalRepo,
		cfg:         cfg,
	}
}

// CreateEntry はジャーナルを作成する。保存前に mood_emoji の割り当てと
// journey_progress の計算を行う (新規エントリはスコア0から開始)。
// 主記録の書き込み失敗はリトライしない。
func (s *journalService) CreateEntry(ctx context.Context, userID uuid.UUID, req *model.CreateJournalRequest) (*model.JournalEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	entry := &model.JournalEntry{
		EntryID: uuid.New(),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Emotion: req.Emotion,
		Tags:    req.Tags,
		Date:    time.Now(),
		Journey: model.JourneyProgress{
			Emoji: "🌱",
			Level: model.JourneyBeginner,
		},
		Display: model.DashboardDisplay{
			FeaturedEmoji: "📝",
			ColorTheme:    "blue",
			Visibility:    "private",
		},
		EmotionEmoji: "💭",
		IsPrivate:    true,
	}
	if req.Mood != nil {
		mood := model.Mood(*req.Mood)
		entry.Mood = &mood
	}
	if req.IsPrivate != nil {
		entry.IsPrivate = *req.IsPrivate
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	AssignMoodEmoji(entry)
	CalculateJourneyProgress(entry)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := s.journalRepo.Create(ctx, tx, entry); createErr != nil {
			logger.Error("Error creating journal entry", "error", createErr)
			return model.NewAppError("DEPENDENCY_ERROR", "ジャーナルの保存に失敗しました。", "", model.ErrDependency)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully created journal entry",
		"entry_id", entry.EntryID,
		"improvement_score", entry.Journey.ImprovementScore,
	)
	return entry, nil
}

func (s *journalService) GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*model.JournalEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "entry_id", entryID)

	entry, err := s.journalRepo.FindByID(ctx, s.db, userID, entryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "ジャーナルが見つかりません。", "", err)
		}
		logger.Error("Failed to find journal entry from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ジャーナルの取得に失敗しました。", "", err)
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.JournalEntry, *model.Pagination, error) {
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

	entries, total, err := s.journalRepo.FindByUser(ctx, s.db, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to find journal entries from repository", "error", err)
		return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ジャーナル一覧の取得に失敗しました。", "", err)
	}

	logger.Info("Successfully retrieved journal entries", "count", len(entries), "total", total)
	return entries, &model.Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(entries)) < total,
	}, nil
}

// UpdateEntry は部分更新。保存前に導出ステップを再実行するため、
// 編集でも improvement_score が再計算される。
func (s *journalService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *model.UpdateJournalRequest) (*model.JournalEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "entry_id", entryID)

	var updated *model.JournalEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, findErr := s.journalRepo.FindByID(ctx, tx, userID, entryID)
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "更新対象のジャーナルが見つかりません。", "", findErr)
			}
			logger.Error("Error finding journal entry in transaction", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ジャーナルの確認中にエラーが発生しました。", "", findErr)
		}

		if req.Title != nil {
			entry.Title = *req.Title
		}
		if req.Content != nil {
			entry.Content = *req.Content
		}
		if req.Mood != nil {
			mood := model.Mood(*req.Mood)
			entry.Mood = &mood
			// 気分が変わったので絵文字も再割り当て
			entry.MoodEmoji = ""
		}
		if req.Emotion != nil {
			entry.Emotion = *req.Emotion
		}
		if req.Tags != nil {
			entry.Tags = req.Tags
		}

		AssignMoodEmoji(entry)
		CalculateJourneyProgress(entry)

		if saveErr := s.journalRepo.Save(ctx, tx, entry); saveErr != nil {
			logger.Error("Error saving journal entry", "error", saveErr)
			return model.NewAppError("DEPENDENCY_ERROR", "ジャーナルの保存に失敗しました。", "", model.ErrDependency)
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully updated journal entry",
		"improvement_score", updated.Journey.ImprovementScore,
	)
	return updated, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "entry_id", entryID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delErr := s.journalRepo.Delete(ctx, tx, userID, entryID); delErr != nil {
			if errors.Is(delErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "削除対象のジャーナルが見つかりません。", "", delErr)
			}
			logger.Error("Error deleting journal entry", "error", delErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ジャーナルの削除に失敗しました。", "", delErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Successfully deleted journal entry")
	return nil
}

// GetDashboardSummary は直近days日間のジャーナルの絵文字サマリーを返す。
// エントリが1件もないときはゼロ状態 (🌱 / 😐 / 0 / 0) を返す。
func (s *journalService) GetDashboardSummary(ctx context.Context, userID uuid.UUID, days int) (*model.DashboardSummary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if days <= 0 {
		days = s.cfg.App.DashboardDays
	}
	start, end := defaultPeriod(days)

	entries, err := s.journalRepo.FindByDateRange(ctx, s.db, userID, start, end)
	if err != nil {
		logger.Error("Failed to find journal entries for summary", "error", err)
		return nil, model.NewAppError("DEPENDENCY_ERROR", "ジャーナルサマリーの取得に失敗しました。", "", model.ErrDependency)
	}

	return SummarizeEntries(entries), nil
}

// SummarizeEntries はエントリ群 (新しい順) からサマリーを合成する純粋関数
func SummarizeEntries(entries []*model.JournalEntry) *model.DashboardSummary {
	if len(entries) == 0 {
		return &model.DashboardSummary{
			JourneyEmoji:          "🌱",
			MoodTrend:             "😐",
			ImprovementPercentage: 0,
			EntriesCount:          0,
		}
	}

	// 平均改善スコアと気分絵文字の頻度を1パスで集計
	var scoreSum int
	moodCounts := make(map[string]int)
	moodTrend := "😐"
	bestCount := 0
	for _, e := range entries {
		scoreSum += e.Journey.ImprovementScore
		if e.MoodEmoji == "" {
			continue
		}
		moodCounts[e.MoodEmoji]++
		// 同数のときは先に出現した (より新しい) 絵文字を維持する
		if moodCounts[e.MoodEmoji] > bestCount {
			bestCount = moodCounts[e.MoodEmoji]
			moodTrend = e.MoodEmoji
		}
	}

	recentCount := 3
	if len(entries) < recentCount {
		recentCount = len(entries)
	}
	recent := make([]model.RecentEntry, 0, recentCount)
	for _, e := range entries[:recentCount] {
		recent = append(recent, model.RecentEntry{
			Date:          e.Date,
			Title:         e.Title,
			MoodEmoji:     e.MoodEmoji,
			JourneyEmoji:  e.Journey.Emoji,
			FeaturedEmoji: e.Display.FeaturedEmoji,
		})
	}

	return &model.DashboardSummary{
		JourneyEmoji:          entries[0].Journey.Emoji,
		MoodTrend:             moodTrend,
		ImprovementPercentage: int(math.Round(float64(scoreSum) / float64(len(entries)))),
		EntriesCount:          len(entries),
		RecentEntries:         recent,
	}
}

// GetMoodGraph は旧ムードグラフ互換の日次系列 (日付昇順) を返す
func (s *journalService) GetMoodGraph(ctx context.Context, userID uuid.UUID, days int) ([]model.MoodGraphPoint, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if days <= 0 {
		days = s.cfg.App.DashboardDays
	}
	start, end := defaultPeriod(days)

	entries, err := s.journalRepo.FindByDateRange(ctx, s.db, userID, start, end)
	if err != nil {
		logger.Error("Failed to find journal entries for mood graph", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ムードグラフの取得に失敗しました。", "", err)
	}

	// FindByDateRange は新しい順なので昇順に詰め直す
	points := make([]model.MoodGraphPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		point := model.MoodGraphPoint{Date: e.Date}
		if e.Mood != nil {
			point.Mood = string(*e.Mood)
		}
		points = append(points, point)
	}
	return points, nil
}
