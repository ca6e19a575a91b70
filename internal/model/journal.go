// internal/model/journal.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood はジャーナルの気分 (10値)
type Mood string

const (
	MoodVeryHappy Mood = "very_happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very_sad"
	MoodAngry     Mood = "angry"
	MoodAnxious   Mood = "anxious"
	MoodExcited   Mood = "excited"
	MoodCalm      Mood = "calm"
	MoodStressed  Mood = "stressed"
)

// JourneyLevel は改善スコアのバンドに対応する成長段階
type JourneyLevel string

const (
	JourneyBeginner    JourneyLevel = "beginner"
	JourneyGrowing     JourneyLevel = "growing"
	JourneyBlooming    JourneyLevel = "blooming"
	JourneyFlourishing JourneyLevel = "flourishing"
	JourneyMastery     JourneyLevel = "mastery"
)

// JourneyProgress はエントリごとの改善スコアとそのバンド表現。
// Level と Emoji は常に ImprovementScore の関数であり、単独では設定しない。
type JourneyProgress struct {
	Emoji            string       `gorm:"default:🌱" json:"emoji"`
	Level            JourneyLevel `gorm:"default:beginner" json:"level"`
	ImprovementScore int          `gorm:"default:0" json:"improvement_score"`
}

// DashboardDisplay はダッシュボード表示用のメタ情報
type DashboardDisplay struct {
	FeaturedEmoji string `gorm:"default:📝" json:"featured_emoji"`
	ColorTheme    string `gorm:"default:blue" json:"color_theme"`
	Visibility    string `gorm:"default:private" json:"visibility"`
}

// JournalEntry はジャーナルエントリを表します。
// mood_emoji と journey_progress は保存のたびに導出ステップを通る
// (編集時もスコアが再計算される点は仕様どおり)。
type JournalEntry struct {
	EntryID      uuid.UUID        `gorm:"type:uuid;primaryKey" json:"entry_id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_journal_user_date" json:"-"`
	Title        string           `gorm:"not null" json:"title"`
	Content      string           `gorm:"not null" json:"content"`
	Mood         *Mood            `gorm:"index" json:"mood,omitempty"`
	MoodEmoji    string           `json:"mood_emoji,omitempty"`
	Emotion      string           `json:"emotion,omitempty"`
	EmotionEmoji string           `gorm:"default:💭" json:"emotion_emoji,omitempty"`
	Tags         []string         `gorm:"serializer:json" json:"tags,omitempty"`
	Journey      JourneyProgress  `gorm:"embedded;embeddedPrefix:journey_" json:"journey_progress"`
	Display      DashboardDisplay `gorm:"embedded;embeddedPrefix:display_" json:"dashboard_display"`
	IsPrivate    bool             `gorm:"default:true" json:"is_private"`
	Date         time.Time        `gorm:"not null;index:idx_journal_user_date" json:"date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// ジャーナル作成リクエストDTO
type CreateJournalRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Content   string     `json:"content" validate:"required,max=5000"`
	Mood      *string    `json:"mood,omitempty" validate:"omitempty,oneof=very_happy happy neutral sad very_sad angry anxious excited calm stressed"`
	Emotion   string     `json:"emotion,omitempty" validate:"omitempty,max=100"`
	Tags      []string   `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	IsPrivate *bool      `json:"is_private,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// ジャーナル更新リクエストDTO (部分更新)
type UpdateJournalRequest struct {
	Title   *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string  `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Mood    *string  `json:"mood,omitempty" validate:"omitempty,oneof=very_happy happy neutral sad very_sad angry anxious excited calm stressed"`
	Emotion *string  `json:"emotion,omitempty" validate:"omitempty,max=100"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
}

// RecentEntry はダッシュボードサマリーに含める直近エントリの抜粋
type RecentEntry struct {
	Date          time.Time `json:"date"`
	Title         string    `json:"title"`
	MoodEmoji     string    `json:"mood_emoji,omitempty"`
	JourneyEmoji  string    `json:"journey_emoji"`
	FeaturedEmoji string    `json:"featured_emoji"`
}

// DashboardSummary はジャーナルの絵文字サマリー (直近N日間)
type DashboardSummary struct {
	JourneyEmoji          string        `json:"journey_emoji"`
	MoodTrend             string        `json:"mood_trend"`
	ImprovementPercentage int           `json:"improvement_percentage"`
	EntriesCount          int           `json:"entries_count"`
	RecentEntries         []RecentEntry `json:"recent_entries,omitempty"`
}
