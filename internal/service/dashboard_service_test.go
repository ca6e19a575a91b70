// internal/service/dashboard_service_test.go
package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go_wellness_keep/internal/cache"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache はテスト用の素朴なキャッシュ実装
type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := c.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *memoryCache) Close() error { return nil }

func TestDashboardService_GetEmojiDashboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newService := func(t *testing.T, c cache.Cache) (DashboardService, *mocks.HRVRepository, *mocks.JournalRepository, *mocks.UserChallengeRepository) {
		t.Helper()
		db := setupTestDB(t)
		cfg := testConfig()
		mockHRVRepo := new(mocks.HRVRepository)
		mockJournalRepo := new(mocks.JournalRepository)
		mockUserChalRepo := new(mocks.UserChallengeRepository)
		journalSvc := NewJournalService(db, mockJournalRepo, cfg)
		statsSvc := NewStatsService(db, mockHRVRepo, mockJournalRepo, mockUserChalRepo, cfg)
		svc := NewDashboardService(db, mockHRVRepo, mockJournalRepo, journalSvc, statsSvc, c, cfg)
		return svc, mockHRVRepo, mockJournalRepo, mockUserChalRepo
	}

	t.Run("正常系: ジャーナルと期間統計から合成される", func(t *testing.T) {
		svc, mockHRVRepo, mockJournalRepo, mockUserChalRepo := newService(t, cache.NewNoopCache())

		happy := model.MoodHappy
		entries := []*model.JournalEntry{
			{
				Title:     "entry",
				Mood:      &happy,
				MoodEmoji: "😊",
				Date:      time.Now(),
				Journey:   model.JourneyProgress{ImprovementScore: 80, Emoji: "🏆"},
			},
		}
		mockJournalRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(entries, nil).Once()
		mockHRVRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.HRVReading{
				reading(time.Now(), 55, model.StressModerate),
			}, nil).Once()
		mockUserChalRepo.On("CountCompletedInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(3), nil).Once()
		mockJournalRepo.On("CountInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(1), nil).Once()

		dashboard, err := svc.GetEmojiDashboard(ctx, userID, 7)

		require.NoError(t, err)
		assert.Equal(t, "😊", dashboard.Journal.MoodTrend)
		assert.Equal(t, 80, dashboard.Journal.ImprovementPercentage)
		assert.Equal(t, "😌", dashboard.WellnessEmoji)      // avgHRV 55 >= 50
		assert.Equal(t, "🎖️", dashboard.AchievementEmoji) // 完了3件
		assert.InDelta(t, 55.0, dashboard.AvgHRV, 0.0001)
		assert.Equal(t, int64(3), dashboard.ChallengesCompleted)
		// 改善率80 >= 70 のメッセージ帯
		assert.Equal(t, "素晴らしい進歩です！この調子で続けましょう。", dashboard.Message)

		mockHRVRepo.AssertExpectations(t)
		mockJournalRepo.AssertExpectations(t)
		mockUserChalRepo.AssertExpectations(t)
	})

	t.Run("正常系: 2回目はキャッシュから返りリポジトリは呼ばれない", func(t *testing.T) {
		svc, mockHRVRepo, mockJournalRepo, mockUserChalRepo := newService(t, newMemoryCache())

		mockJournalRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.JournalEntry{}, nil).Once()
		mockHRVRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.HRVReading{}, nil).Once()
		mockUserChalRepo.On("CountCompletedInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(0), nil).Once()
		mockJournalRepo.On("CountInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(0), nil).Once()

		first, err := svc.GetEmojiDashboard(ctx, userID, 7)
		require.NoError(t, err)

		// Onceで縛っているので、ここでリポジトリが再度呼ばれたらモックが失敗する
		second, err := svc.GetEmojiDashboard(ctx, userID, 7)
		require.NoError(t, err)
		assert.Equal(t, first.WellnessEmoji, second.WellnessEmoji)
		assert.Equal(t, first.Message, second.Message)

		mockHRVRepo.AssertExpectations(t)
		mockJournalRepo.AssertExpectations(t)
		mockUserChalRepo.AssertExpectations(t)
	})

	t.Run("正常系: ジャーナル集計が落ち続けてもセクションをゼロ化して返す", func(t *testing.T) {
		svc, mockHRVRepo, mockJournalRepo, mockUserChalRepo := newService(t, cache.NewNoopCache())

		// GetDashboardSummary は依存エラーを返すので1回だけ再試行される (計2回)
		mockJournalRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(nil, model.ErrDependency).Times(2)
		mockHRVRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.HRVReading{}, nil).Once()
		mockUserChalRepo.On("CountCompletedInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(1), nil).Once()
		mockJournalRepo.On("CountInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(0), nil).Once()

		dashboard, err := svc.GetEmojiDashboard(ctx, userID, 7)

		require.NoError(t, err)
		// ジャーナルセクションはゼロ状態
		assert.Equal(t, "🌱", dashboard.Journal.JourneyEmoji)
		assert.Equal(t, "😐", dashboard.Journal.MoodTrend)
		assert.Equal(t, 0, dashboard.Journal.EntriesCount)
		// 統計セクションは生きている
		assert.Equal(t, "⭐", dashboard.AchievementEmoji)

		mockHRVRepo.AssertExpectations(t)
		mockJournalRepo.AssertExpectations(t)
		mockUserChalRepo.AssertExpectations(t)
	})

	t.Run("正常系: ゼロ化したセクションを含む結果はキャッシュしない", func(t *testing.T) {
		c := newMemoryCache()
		svc, mockHRVRepo, mockJournalRepo, mockUserChalRepo := newService(t, c)

		// 1回目: ジャーナル集計が再試行しても失敗 → 劣化レスポンス
		mockJournalRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(nil, model.ErrDependency).Times(2)
		mockHRVRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.HRVReading{}, nil).Times(2)
		mockUserChalRepo.On("CountCompletedInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(1), nil).Times(2)
		mockJournalRepo.On("CountInRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(0), nil).Times(2)

		degradedDash, err := svc.GetEmojiDashboard(ctx, userID, 7)
		require.NoError(t, err)
		assert.Equal(t, 0, degradedDash.Journal.EntriesCount)
		assert.Empty(t, c.store, "劣化レスポンスはキャッシュされないこと")

		// 2回目: ジャーナル復旧 → キャッシュヒットせず合成し直される
		happy := model.MoodHappy
		mockJournalRepo.On("FindByDateRange", mock.Anything, mock.Anything, userID,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.JournalEntry{
				{Title: "entry", Mood: &happy, MoodEmoji: "😊", Date: time.Now()},
			}, nil).Once()

		recovered, err := svc.GetEmojiDashboard(ctx, userID, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, recovered.Journal.EntriesCount)
		assert.Equal(t, "😊", recovered.Journal.MoodTrend)
		assert.NotEmpty(t, c.store, "健全なレスポンスはキャッシュされること")

		mockHRVRepo.AssertExpectations(t)
		mockJournalRepo.AssertExpectations(t)
		mockUserChalRepo.AssertExpectations(t)
	})
}

func TestBuildLineGraph(t *testing.T) {
	day1 := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 8, 0, 0, 0, time.UTC)
	calm := "calm"

	t.Run("正常系: 日付ごとにまとめて昇順の点列にする", func(t *testing.T) {
		r1 := reading(day1, 40, model.StressHigh)
		r1.PredictedEmotion = "stressed"
		r2 := reading(day1, 60, model.StressModerate)
		r2.PredictedEmotion = "calm"
		r2.ActualEmotion = &calm
		r3 := reading(day2, 80, model.StressLow)
		r3.PredictedEmotion = "calm"

		points := BuildLineGraph([]*model.HRVReading{r3, r1, r2})
		require.Len(t, points, 2)

		assert.Equal(t, "2026-08-20", points[0].Date)
		assert.InDelta(t, 50.0, points[0].AvgHRV, 0.0001)
		assert.Equal(t, 2, points[0].ReadingCount)
		// 平均50 → (50/100)*10 + moderate(0) = 5.0
		assert.InDelta(t, 5.0, points[0].EmotionScore, 0.0001)
		// 同数 (各1回) は名前昇順
		require.Len(t, points[0].PredictedEmotions, 2)
		assert.Equal(t, "calm", points[0].PredictedEmotions[0].Emotion)
		assert.Equal(t, "stressed", points[0].PredictedEmotions[1].Emotion)
		require.Len(t, points[0].ActualEmotions, 1)
		assert.Equal(t, "calm", points[0].ActualEmotions[0].Emotion)

		assert.Equal(t, "2026-08-21", points[1].Date)
		assert.InDelta(t, 80.0, points[1].AvgHRV, 0.0001)
		// 平均80 → (80/100)*10 + low(+1) = 9.0
		assert.InDelta(t, 9.0, points[1].EmotionScore, 0.0001)
	})

	t.Run("正常系: 上位3件に切り詰める", func(t *testing.T) {
		counts := map[string]int{"calm": 5, "focused": 3, "tired": 2, "stressed": 1}
		top := topEmotions(counts, 3)
		require.Len(t, top, 3)
		assert.Equal(t, "calm", top[0].Emotion)
		assert.Equal(t, 5, top[0].Count)
		assert.Equal(t, "focused", top[1].Emotion)
		assert.Equal(t, "tired", top[2].Emotion)
	})

	t.Run("正常系: 測定なしは空の点列", func(t *testing.T) {
		assert.Empty(t, BuildLineGraph(nil))
	})
}

func TestDashboardEmojiBands(t *testing.T) {
	t.Run("wellnessEmoji", func(t *testing.T) {
		assert.Equal(t, "😌", wellnessEmoji(50))
		assert.Equal(t, "🙂", wellnessEmoji(45))
		assert.Equal(t, "😟", wellnessEmoji(35))
		assert.Equal(t, "😰", wellnessEmoji(29.9))
	})

	t.Run("achievementEmoji", func(t *testing.T) {
		assert.Equal(t, "🏆", achievementEmoji(5))
		assert.Equal(t, "🎖️", achievementEmoji(3))
		assert.Equal(t, "⭐", achievementEmoji(1))
		assert.Equal(t, "✨", achievementEmoji(0))
	})
}
