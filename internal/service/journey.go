package service

import (
	"go_wellness_keep/internal/model"
)

// moodEmojis は気分→絵文字の固定テーブル
var moodEmojis = map[model.Mood]string{
	model.MoodVeryHappy: "😄",
	model.MoodHappy:     "😊",
	model.MoodNeutral:   "😐",
	model.MoodSad:       "😢",
	model.MoodVerySad:   "😭",
	model.MoodAngry:     "😠",
	model.MoodAnxious:   "😰",
	model.MoodExcited:   "🤩",
	model.MoodCalm:      "😌",
	model.MoodStressed:  "😤",
}

// journeyBands は改善スコアの帯 (降順、最初に一致した帯を採用)
var journeyBands = []struct {
	minScore int
	level    model.JourneyLevel
	emoji    string
}{
	{80, model.JourneyMastery, "🏆"},
	{60, model.JourneyFlourishing, "🌸"},
	{40, model.JourneyBlooming, "🌻"},
	{20, model.JourneyGrowing, "🌿"},
	{0, model.JourneyBeginner, "🌱"},
}

// positiveMoods はスコア+10の対象 (neutral は +5、それ以外は -2)
var positiveMoods = map[model.Mood]bool{
	model.MoodVeryHappy: true,
	model.MoodHappy:     true,
	model.MoodExcited:   true,
	model.MoodCalm:      true,
}

// AssignMoodEmoji は mood が設定済みで mood_emoji が未設定のときだけ
// 固定テーブルから絵文字を割り当てる (冪等)。
func AssignMoodEmoji(entry *model.JournalEntry) {
	if entry.Mood == nil || entry.MoodEmoji != "" {
		return
	}
	if emoji, ok := moodEmojis[*entry.Mood]; ok {
		entry.MoodEmoji = emoji
	}
}

// CalculateJourneyProgress はエントリ自身の現在スコアから次のスコアを計算し、
// [0,100] にクランプしたうえで帯に応じた level / emoji を設定する。
// 保存のたびに呼ばれるため、編集でもスコアは再計算される。
func CalculateJourneyProgress(entry *model.JournalEntry) {
	score := entry.Journey.ImprovementScore

	switch {
	case entry.Mood != nil && positiveMoods[*entry.Mood]:
		score += 10
	case entry.Mood != nil && *entry.Mood == model.MoodNeutral:
		score += 5
	default:
		score -= 2
		if score < 0 {
			score = 0
		}
	}
	if score > 100 {
		score = 100
	}

	level, emoji := JourneyBand(score)
	entry.Journey.ImprovementScore = score
	entry.Journey.Level = level
	entry.Journey.Emoji = emoji
}

// JourneyBand は改善スコアに対応する帯の level / emoji を返す
func JourneyBand(score int) (model.JourneyLevel, string) {
	for _, band := range journeyBands {
		if score >= band.minScore {
			return band.level, band.emoji
		}
	}
	return model.JourneyBeginner, "🌱"
}

// MoodEmoji は気分に対応する絵文字を返す (未定義は空文字)
func MoodEmoji(mood model.Mood) string {
	return moodEmojis[mood]
}
