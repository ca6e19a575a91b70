// internal/model/hrv.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StressLevel はHRVスコアから導出されるストレス段階
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
	StressVeryHigh StressLevel = "very_high"
)

// RecoveryStatus はHRVスコアから導出される回復状態
type RecoveryStatus string

const (
	RecoveryPoor      RecoveryStatus = "poor"
	RecoveryFair      RecoveryStatus = "fair"
	RecoveryGood      RecoveryStatus = "good"
	RecoveryExcellent RecoveryStatus = "excellent"
)

// StressLevelValues はストレス段階を平均計算用の数値に写像する (low=1 .. very_high=4)
var StressLevelValues = map[StressLevel]float64{
	StressLow:      1,
	StressModerate: 2,
	StressHigh:     3,
	StressVeryHigh: 4,
}

// ExternalFactor は測定に影響した外部要因とその影響方向
type ExternalFactor struct {
	Factor string `json:"factor" validate:"required,oneof=caffeine alcohol sleep_quality exercise medication stress illness"`
	Impact string `json:"impact" validate:"required,oneof=positive negative neutral"`
}

// HRVReading は1回のHRV測定を表します。
// 導出フィールド (stress_level / recovery_status / predicted_emotion) は
// 保存前に必ず埋められ、以後は不変です (更新・削除APIなし)。
type HRVReading struct {
	ReadingID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"reading_id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index:idx_hrv_user_date" json:"-"`
	HRVScore         float64          `gorm:"not null" json:"hrv_score"`
	RMSSD            *float64         `json:"rmssd,omitempty"`
	HeartRate        *float64         `json:"heart_rate,omitempty"`
	StressLevel      StressLevel      `gorm:"not null" json:"stress_level"`
	RecoveryStatus   RecoveryStatus   `gorm:"not null" json:"recovery_status"`
	PredictedEmotion string           `gorm:"not null" json:"predicted_emotion"`
	ActualEmotion    *string          `json:"actual_emotion,omitempty"`
	EmotionIntensity *int             `json:"emotion_intensity,omitempty"`
	MeasurementContext *string        `json:"measurement_context,omitempty"`
	ExternalFactors  []ExternalFactor `gorm:"serializer:json" json:"external_factors,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Date             time.Time        `gorm:"not null;index:idx_hrv_user_date" json:"date"`

	// 期間集計用のバケット (保存前に date から導出)
	Week  int `gorm:"index" json:"week"`
	Month int `gorm:"index" json:"month"`
	Year  int `gorm:"index" json:"year"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HRVReading) TableName() string {
	return "hrv_readings"
}

// HRV測定登録リクエストDTO
type LogHRVRequest struct {
	HRVScore           *float64         `json:"hrv_score" validate:"required,gte=0,lte=100"`
	RMSSD              *float64         `json:"rmssd,omitempty" validate:"omitempty,gte=0"`
	HeartRate          *float64         `json:"heart_rate,omitempty" validate:"omitempty,gte=30,lte=220"`
	StressLevel        *string          `json:"stress_level,omitempty" validate:"omitempty,oneof=low moderate high very_high"`
	RecoveryStatus     *string          `json:"recovery_status,omitempty" validate:"omitempty,oneof=poor fair good excellent"`
	PredictedEmotion   *string          `json:"predicted_emotion,omitempty" validate:"omitempty,oneof=calm relaxed focused balanced energized stressed anxious tired overwhelmed tense"`
	ActualEmotion      *string          `json:"actual_emotion,omitempty" validate:"omitempty,oneof=happy sad angry anxious excited calm frustrated content worried grateful lonely confident overwhelmed peaceful stressed hopeful disappointed proud fearful joyful"`
	EmotionIntensity   *int             `json:"emotion_intensity,omitempty" validate:"omitempty,gte=1,lte=10"`
	MeasurementContext *string          `json:"measurement_context,omitempty" validate:"omitempty,oneof=morning pre_workout post_workout evening stress_test meditation general"`
	ExternalFactors    []ExternalFactor `json:"external_factors,omitempty" validate:"omitempty,dive"`
	Notes              string           `json:"notes,omitempty" validate:"omitempty,max=500"`
	Date               *time.Time       `json:"date,omitempty"`
}

// HRV一覧取得のクエリ条件
type HRVListQuery struct {
	StressLevel        *string
	MeasurementContext *string
	StartDate          *time.Time
	EndDate            *time.Time
	Limit              int
	Offset             int
}

// HRV一覧レスポンスDTO
type HRVListResponse struct {
	Readings   []*HRVReading `json:"readings"`
	Pagination Pagination    `json:"pagination"`
}

// Pagination は一覧系レスポンス共通のページング情報
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}
