// internal/service/journal_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.HRVReading{},
		&model.JournalEntry{},
		&model.Challenge{},
		&model.UserChallenge{},
	))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.DashboardDays = 7
	cfg.App.DefaultLimit = 20
	cfg.App.MaxLimit = 100
	return cfg
}

func TestJournalService_CreateEntry(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mood := "happy"

	tests := []struct {
		name      string
		req       *model.CreateJournalRequest
		setupMock func(m *mocks.JournalRepository)
		wantErr   error
		check     func(t *testing.T, entry *model.JournalEntry)
	}{
		{
			name: "正常系: 気分つきエントリは絵文字とスコアが導出される",
			req:  &model.CreateJournalRequest{Title: "朝の記録", Content: "よく眠れた", Mood: &mood},
			setupMock: func(m *mocks.JournalRepository) {
				m.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.JournalEntry")).
					Return(nil).Once()
			},
			check: func(t *testing.T, entry *model.JournalEntry) {
				assert.Equal(t, "😊", entry.MoodEmoji)
				assert.Equal(t, 10, entry.Journey.ImprovementScore)
				assert.Equal(t, model.JourneyBeginner, entry.Journey.Level)
				assert.Equal(t, "🌱", entry.Journey.Emoji)
				assert.Equal(t, "📝", entry.Display.FeaturedEmoji)
				assert.True(t, entry.IsPrivate)
			},
		},
		{
			name: "正常系: 気分なしエントリはスコア0のまま",
			req:  &model.CreateJournalRequest{Title: "メモ", Content: "特になし"},
			setupMock: func(m *mocks.JournalRepository) {
				m.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.JournalEntry")).
					Return(nil).Once()
			},
			check: func(t *testing.T, entry *model.JournalEntry) {
				assert.Empty(t, entry.MoodEmoji)
				assert.Equal(t, 0, entry.Journey.ImprovementScore)
			},
		},
		{
			name: "異常系: 保存失敗は依存エラーとして返る",
			req:  &model.CreateJournalRequest{Title: "朝の記録", Content: "よく眠れた", Mood: &mood},
			setupMock: func(m *mocks.JournalRepository) {
				m.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.JournalEntry")).
					Return(errors.New("db error")).Once()
			},
			wantErr: model.ErrDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			mockRepo := new(mocks.JournalRepository)
			tt.setupMock(mockRepo)
			svc := NewJournalService(db, mockRepo, testConfig())

			entry, err := svc.CreateEntry(ctx, userID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				assert.Equal(t, userID, entry.UserID)
				tt.check(t, entry)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestJournalService_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()
	sad := "sad"

	t.Run("正常系: 編集でもスコアが再計算される", func(t *testing.T) {
		db := setupTestDB(t)
		mockRepo := new(mocks.JournalRepository)

		happy := model.MoodHappy
		existing := &model.JournalEntry{
			EntryID:   entryID,
			UserID:    userID,
			Title:     "朝の記録",
			Content:   "よく眠れた",
			Mood:      &happy,
			MoodEmoji: "😊",
			Journey:   model.JourneyProgress{ImprovementScore: 10, Level: model.JourneyBeginner, Emoji: "🌱"},
		}
		mockRepo.On("FindByID", mock.Anything, mock.Anything, userID, entryID).
			Return(existing, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.JournalEntry")).
			Return(nil).Once()

		svc := NewJournalService(db, mockRepo, testConfig())
		updated, err := svc.UpdateEntry(ctx, userID, entryID, &model.UpdateJournalRequest{Mood: &sad})

		require.NoError(t, err)
		// 自身の現在スコア10から-2で8になる
		assert.Equal(t, 8, updated.Journey.ImprovementScore)
		assert.Equal(t, "😢", updated.MoodEmoji)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 対象が存在しないときはNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		mockRepo := new(mocks.JournalRepository)
		mockRepo.On("FindByID", mock.Anything, mock.Anything, userID, entryID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewJournalService(db, mockRepo, testConfig())
		_, err := svc.UpdateEntry(ctx, userID, entryID, &model.UpdateJournalRequest{Mood: &sad})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestSummarizeEntries(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Now().AddDate(0, 0, -offset)
	}
	entry := func(offset int, moodEmoji string, score int, journeyEmoji string) *model.JournalEntry {
		return &model.JournalEntry{
			Title:     "entry",
			MoodEmoji: moodEmoji,
			Date:      day(offset),
			Journey:   model.JourneyProgress{ImprovementScore: score, Emoji: journeyEmoji},
			Display:   model.DashboardDisplay{FeaturedEmoji: "📝"},
		}
	}

	t.Run("正常系: エントリなしはゼロ状態", func(t *testing.T) {
		summary := SummarizeEntries(nil)

		assert.Equal(t, "🌱", summary.JourneyEmoji)
		assert.Equal(t, "😐", summary.MoodTrend)
		assert.Equal(t, 0, summary.ImprovementPercentage)
		assert.Equal(t, 0, summary.EntriesCount)
		assert.Empty(t, summary.RecentEntries)
	})

	t.Run("正常系: 多数派の気分絵文字がトレンドになる", func(t *testing.T) {
		// [happy, happy, sad] → 😊 が多数派
		entries := []*model.JournalEntry{
			entry(0, "😊", 30, "🌿"),
			entry(1, "😊", 20, "🌿"),
			entry(2, "😢", 10, "🌱"),
		}
		summary := SummarizeEntries(entries)

		assert.Equal(t, "😊", summary.MoodTrend)
		// journey_emoji は最新エントリのもの
		assert.Equal(t, "🌿", summary.JourneyEmoji)
		// (30+20+10)/3 = 20
		assert.Equal(t, 20, summary.ImprovementPercentage)
		assert.Equal(t, 3, summary.EntriesCount)
		assert.Len(t, summary.RecentEntries, 3)
	})

	t.Run("正常系: 同数のときは新しい方の絵文字が勝つ", func(t *testing.T) {
		entries := []*model.JournalEntry{
			entry(0, "😌", 10, "🌱"),
			entry(1, "😢", 10, "🌱"),
		}
		summary := SummarizeEntries(entries)
		assert.Equal(t, "😌", summary.MoodTrend)
	})

	t.Run("正常系: 気分絵文字がないときのトレンドは😐", func(t *testing.T) {
		entries := []*model.JournalEntry{
			entry(0, "", 10, "🌱"),
			entry(1, "", 20, "🌱"),
		}
		summary := SummarizeEntries(entries)
		assert.Equal(t, "😐", summary.MoodTrend)
		// round(15) = 15
		assert.Equal(t, 15, summary.ImprovementPercentage)
	})

	t.Run("正常系: 直近エントリは最大3件", func(t *testing.T) {
		entries := []*model.JournalEntry{
			entry(0, "😊", 10, "🌱"),
			entry(1, "😊", 10, "🌱"),
			entry(2, "😊", 10, "🌱"),
			entry(3, "😊", 10, "🌱"),
			entry(4, "😊", 10, "🌱"),
		}
		summary := SummarizeEntries(entries)
		assert.Len(t, summary.RecentEntries, 3)
		assert.Equal(t, 5, summary.EntriesCount)
	})
}
