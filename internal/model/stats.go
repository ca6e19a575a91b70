// internal/model/stats.go
package model

import "time"

// PeriodStatistics は任意の期間 [start, end] (end含む) の集計値。
// 永続化しない一時的な構造体。
type PeriodStatistics struct {
	AvgHRV              float64 `json:"avg_hrv"`
	AvgStressLevel      float64 `json:"avg_stress_level"`
	ChallengesCompleted int64   `json:"challenges_completed"`
	JournalEntries      int64   `json:"journal_entries"`
	HRVReadings         int64   `json:"hrv_readings"`
}

// Improvement は2期間の比較結果 (すべて小数第2位に丸めたパーセント値)
type Improvement struct {
	HRVChange      float64 `json:"hrv_change"`
	StressChange   float64 `json:"stress_change"`
	ActivityChange float64 `json:"activity_change"`
	Overall        float64 `json:"overall"`
}

// HRVTrend は日次HRV系列の傾向分類
type HRVTrend string

const (
	TrendImproving        HRVTrend = "improving"
	TrendDeclining        HRVTrend = "declining"
	TrendStable           HRVTrend = "stable"
	TrendInsufficientData HRVTrend = "insufficient_data"
)

// HRVStatsResponse は /hrv/stats のレスポンス (現期間 vs 直前の同長期間)
type HRVStatsResponse struct {
	PeriodDays  int              `json:"period_days"`
	Current     PeriodStatistics `json:"current"`
	Previous    PeriodStatistics `json:"previous"`
	Improvement Improvement      `json:"improvement"`
	Trend       HRVTrend         `json:"trend"`
}

// EmotionCount は出現頻度つきの感情
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// LineGraphPoint は折れ線グラフ用の日次集計点
type LineGraphPoint struct {
	Date              string         `json:"date"`
	AvgHRV            float64        `json:"avg_hrv"`
	EmotionScore      float64        `json:"emotion_score"`
	ReadingCount      int            `json:"reading_count"`
	PredictedEmotions []EmotionCount `json:"predicted_emotions,omitempty"`
	ActualEmotions    []EmotionCount `json:"actual_emotions,omitempty"`
}

// EmojiDashboard は合成された絵文字ダッシュボード
type EmojiDashboard struct {
	Journal             DashboardSummary `json:"journal"`
	WellnessEmoji       string           `json:"wellness_emoji"`
	AchievementEmoji    string           `json:"achievement_emoji"`
	AvgHRV              float64          `json:"avg_hrv"`
	ChallengesCompleted int64            `json:"challenges_completed"`
	Message             string           `json:"message"`
}

// MonthlyImprovement は当月と前月の比較
type MonthlyImprovement struct {
	CurrentMonth  string           `json:"current_month"`
	PreviousMonth string           `json:"previous_month"`
	Current       PeriodStatistics `json:"current"`
	Previous      PeriodStatistics `json:"previous"`
	Improvement   Improvement      `json:"improvement"`
}

// MoodGraphPoint は旧ムードグラフ互換の1点
type MoodGraphPoint struct {
	Date time.Time `json:"date"`
	Mood string    `json:"mood,omitempty"`
}
