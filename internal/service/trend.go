package service

import (
	"math"

	"go_wellness_keep/internal/model"
)

// round2 は小数第2位への丸め
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateImprovement は前後2期間の集計値からパーセント変化を計算する。
// 分母が0以下の項は0%とし、ゼロ除算を避ける。
// ストレスは数値が下がるほど良いので符号を反転する。
func CalculateImprovement(previous, current model.PeriodStatistics) model.Improvement {
	var hrvChange, stressChange, activityChange float64

	if previous.AvgHRV > 0 {
		hrvChange = (current.AvgHRV - previous.AvgHRV) / previous.AvgHRV * 100
	}
	if previous.AvgStressLevel > 0 {
		stressChange = (previous.AvgStressLevel - current.AvgStressLevel) / previous.AvgStressLevel * 100
	}
	prevActivity := float64(previous.ChallengesCompleted + previous.JournalEntries)
	currActivity := float64(current.ChallengesCompleted + current.JournalEntries)
	if prevActivity > 0 {
		activityChange = (currActivity - prevActivity) / prevActivity * 100
	}

	overall := (hrvChange + stressChange + activityChange) / 3

	return model.Improvement{
		HRVChange:      round2(hrvChange),
		StressChange:   round2(stressChange),
		ActivityChange: round2(activityChange),
		Overall:        round2(overall),
	}
}

// ClassifyHRVTrend は日次平均HRVの系列 (日付昇順) を傾向に分類する。
// 先頭7点と末尾7点の平均を比較し、±5%を閾値とする。
// 系列が14点未満のときは両ウィンドウが重なるが、そのまま比較する。
func ClassifyHRVTrend(dailyAvgs []float64) model.HRVTrend {
	if len(dailyAvgs) < 2 {
		return model.TrendInsufficientData
	}

	window := 7
	if len(dailyAvgs) < window {
		window = len(dailyAvgs)
	}

	firstMean := mean(dailyAvgs[:window])
	lastMean := mean(dailyAvgs[len(dailyAvgs)-window:])

	if firstMean <= 0 {
		return model.TrendStable
	}
	changePct := (lastMean - firstMean) / firstMean * 100

	switch {
	case changePct > 5:
		return model.TrendImproving
	case changePct < -5:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// EmotionScoreFromHRV はHRVスコアを1〜10の感情スコアに変換する。
// ストレス段階による補正: low:+1 / moderate:+0 / high:-1 / very_high:-2。
// 折れ線グラフ表示専用で永続化はしない。
func EmotionScoreFromHRV(hrvScore float64) float64 {
	score := hrvScore / 100 * 10

	switch ClassifyStressLevel(hrvScore) {
	case model.StressLow:
		score += 1
	case model.StressModerate:
		// 補正なし
	case model.StressHigh:
		score -= 1
	case model.StressVeryHigh:
		score -= 2
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return round2(score)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
