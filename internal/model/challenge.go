// internal/model/challenge.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeStatus はユーザーチャレンジの状態 (4状態の単純な状態機械)
type ChallengeStatus string

const (
	ChallengeNotStarted ChallengeStatus = "not_started"
	ChallengeInProgress ChallengeStatus = "in_progress"
	ChallengeCompleted  ChallengeStatus = "completed"
	ChallengeSkipped    ChallengeStatus = "skipped"
)

// Challenge はガイド付きチャレンジのカタログ項目
type Challenge struct {
	ChallengeID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"challenge_id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `gorm:"not null" json:"description"`
	Category          string    `gorm:"not null;index" json:"category"`
	DifficultyLevel   string    `gorm:"default:beginner;index" json:"difficulty_level"`
	EstimatedDuration int       `gorm:"not null" json:"estimated_duration"`
	DurationUnit      string    `gorm:"default:minutes" json:"duration_unit"`
	Frequency         string    `gorm:"default:one_time" json:"frequency"`
	ExpectedHRVImpact string    `gorm:"default:moderate" json:"expected_hrv_impact"`
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`
	CreatedBy         string    `gorm:"default:system" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// UserChallenge はユーザーとチャレンジの組に対して一意な進捗レコード。
// ハード削除はしない。hrv_improvement は hrv_before / hrv_after が
// どちらも存在するとき保存ごとに再計算される。
type UserChallenge struct {
	UserChallengeID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_challenge_id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_uc_user_challenge,unique;index:idx_uc_user_status" json:"-"`
	ChallengeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_uc_user_challenge,unique" json:"challenge_id"`
	Status          ChallengeStatus `gorm:"default:not_started;index:idx_uc_user_status" json:"status"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	UserResponse    string          `json:"user_response,omitempty"`
	Rating          *int            `json:"rating,omitempty"`
	Feedback        string          `json:"feedback,omitempty"`
	CompletionStreak int            `gorm:"default:0" json:"completion_streak"`
	HRVBefore       *float64        `json:"hrv_before,omitempty"`
	HRVAfter        *float64        `json:"hrv_after,omitempty"`
	HRVImprovement  *float64        `json:"hrv_improvement,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Challenge *Challenge `gorm:"foreignKey:ChallengeID;references:ChallengeID" json:"challenge,omitempty"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}

// チャレンジ開始リクエストDTO
type StartChallengeRequest struct {
	HRVBefore *float64 `json:"hrv_before,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// チャレンジ完了リクエストDTO
type CompleteChallengeRequest struct {
	UserResponse string   `json:"user_response,omitempty" validate:"omitempty,max=2000"`
	Rating       *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Feedback     string   `json:"feedback,omitempty" validate:"omitempty,max=500"`
	HRVAfter     *float64 `json:"hrv_after,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// カタログ一覧のクエリ条件
type ChallengeListQuery struct {
	Category        *string
	DifficultyLevel *string
	Frequency       *string
	Limit           int
	Offset          int
}

// カタログ一覧レスポンスDTO
type ChallengeListResponse struct {
	Challenges []*Challenge `json:"challenges"`
	Pagination Pagination   `json:"pagination"`
}

// チャレンジ詳細 + 呼び出しユーザーの進捗
type ChallengeDetailResponse struct {
	Challenge    *Challenge     `json:"challenge"`
	UserProgress *UserChallenge `json:"user_progress,omitempty"`
}

// ユーザーチャレンジ一覧レスポンスDTO (状態別件数つき)
type UserChallengeListResponse struct {
	UserChallenges []*UserChallenge `json:"user_challenges"`
	Statistics     map[string]int64 `json:"statistics"`
	Pagination     Pagination       `json:"pagination"`
}
