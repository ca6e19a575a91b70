package service

import (
	"math"
	"math/rand"
	"time"

	"go_wellness_keep/internal/model"
)

// EmotionPicker は感情候補リストから1つ選ぶ関数。
// 本番ではランダム選択、テストでは決定的な実装を注入する。
type EmotionPicker func(candidates []string) string

// NewRandomEmotionPicker は時刻シードの乱数で候補から選ぶPickerを返す
func NewRandomEmotionPicker() EmotionPicker {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(candidates []string) string {
		return candidates[rng.Intn(len(candidates))]
	}
}

// FirstEmotionPicker は常に先頭の候補を返す (テスト用)
func FirstEmotionPicker(candidates []string) string {
	return candidates[0]
}

// HRVスコア帯ごとの予測感情の候補
var emotionCandidates = []struct {
	minScore   float64
	candidates []string
}{
	{70, []string{"calm", "relaxed", "balanced", "focused"}},
	{50, []string{"calm", "focused", "energized"}},
	{30, []string{"stressed", "tense", "tired"}},
	{0, []string{"anxious", "overwhelmed", "stressed"}},
}

// ClassifyStressLevel はHRVスコアをストレス段階に写像する (高スコア=低ストレス)
func ClassifyStressLevel(hrvScore float64) model.StressLevel {
	switch {
	case hrvScore >= 70:
		return model.StressLow
	case hrvScore >= 50:
		return model.StressModerate
	case hrvScore >= 30:
		return model.StressHigh
	default:
		return model.StressVeryHigh
	}
}

// ClassifyRecoveryStatus はHRVスコアを回復状態に写像する
func ClassifyRecoveryStatus(hrvScore float64) model.RecoveryStatus {
	switch {
	case hrvScore >= 75:
		return model.RecoveryExcellent
	case hrvScore >= 60:
		return model.RecoveryGood
	case hrvScore >= 40:
		return model.RecoveryFair
	default:
		return model.RecoveryPoor
	}
}

// PredictEmotion はHRVスコア帯の候補からPickerで1つ選ぶ
func PredictEmotion(hrvScore float64, pick EmotionPicker) string {
	for _, band := range emotionCandidates {
		if hrvScore >= band.minScore {
			return pick(band.candidates)
		}
	}
	// hrvScore は 0..100 に検証済みなので到達しないが、最低帯にフォールバック
	return pick(emotionCandidates[len(emotionCandidates)-1].candidates)
}

// ApplyDerivedFields は保存前の導出ステップ。
// クライアントが明示した導出フィールドは上書きしない (absent のときだけ導出)。
func ApplyDerivedFields(reading *model.HRVReading, pick EmotionPicker) {
	if reading.Date.IsZero() {
		reading.Date = time.Now()
	}
	reading.Year = reading.Date.Year()
	reading.Month = int(reading.Date.Month())
	reading.Week = weekOfYear(reading.Date)

	if reading.StressLevel == "" {
		reading.StressLevel = ClassifyStressLevel(reading.HRVScore)
	}
	if reading.RecoveryStatus == "" {
		reading.RecoveryStatus = ClassifyRecoveryStatus(reading.HRVScore)
	}
	if reading.PredictedEmotion == "" {
		reading.PredictedEmotion = PredictEmotion(reading.HRVScore, pick)
	}
}

// weekOfYear は年初からの経過日数と1月1日の曜日に基づく週番号 (1始まり)。
// ISO週番号とは異なる単純な分割方式。
func weekOfYear(date time.Time) int {
	firstDay := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	pastDays := date.Sub(firstDay).Hours() / 24
	return int(math.Ceil((pastDays + float64(firstDay.Weekday()) + 1) / 7))
}
