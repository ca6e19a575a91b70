// internal/service/challenge_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"
	"go_wellness_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChallengeService_StartChallenge(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	challengeID := uuid.New()
	hrv := 55.0
	challenge := &model.Challenge{ChallengeID: challengeID, Title: "深呼吸", Category: "breathing"}

	tests := []struct {
		name      string
		req       *model.StartChallengeRequest
		setupMock func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository)
		wantErr   error
		check     func(t *testing.T, uc *model.UserChallenge)
	}{
		{
			name: "正常系: 初回開始でレコードが作られる",
			req:  &model.StartChallengeRequest{HRVBefore: &hrv},
			setupMock: func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository) {
				cm.On("FindByID", mock.Anything, mock.Anything, challengeID).Return(challenge, nil).Once()
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(nil, model.ErrNotFound).Once()
				um.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
					Return(nil).Once()
			},
			check: func(t *testing.T, uc *model.UserChallenge) {
				assert.Equal(t, model.ChallengeInProgress, uc.Status)
				require.NotNil(t, uc.StartedAt)
				require.NotNil(t, uc.HRVBefore)
				assert.Equal(t, 55.0, *uc.HRVBefore)
				assert.Nil(t, uc.HRVImprovement)
			},
		},
		{
			name: "異常系: 進行中のチャレンジは再開始できない",
			req:  &model.StartChallengeRequest{},
			setupMock: func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository) {
				cm.On("FindByID", mock.Anything, mock.Anything, challengeID).Return(challenge, nil).Once()
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(&model.UserChallenge{Status: model.ChallengeInProgress}, nil).Once()
			},
			wantErr: model.ErrInvalidState,
		},
		{
			name: "正常系: 完了済みからの再開始は完了記録をクリアする",
			req:  &model.StartChallengeRequest{},
			setupMock: func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository) {
				completedAt := time.Now().Add(-24 * time.Hour)
				cm.On("FindByID", mock.Anything, mock.Anything, challengeID).Return(challenge, nil).Once()
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(&model.UserChallenge{
						UserChallengeID: uuid.New(),
						UserID:          userID,
						ChallengeID:     challengeID,
						Status:          model.ChallengeCompleted,
						CompletedAt:     &completedAt,
						UserResponse:    "とても良かった",
					}, nil).Once()
				um.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
					Return(nil).Once()
			},
			check: func(t *testing.T, uc *model.UserChallenge) {
				assert.Equal(t, model.ChallengeInProgress, uc.Status)
				assert.Nil(t, uc.CompletedAt)
				assert.Empty(t, uc.UserResponse)
				require.NotNil(t, uc.StartedAt)
			},
		},
		{
			name: "正常系: スキップ済みからの開始",
			req:  &model.StartChallengeRequest{},
			setupMock: func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository) {
				cm.On("FindByID", mock.Anything, mock.Anything, challengeID).Return(challenge, nil).Once()
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(&model.UserChallenge{
						UserChallengeID: uuid.New(),
						UserID:          userID,
						ChallengeID:     challengeID,
						Status:          model.ChallengeSkipped,
					}, nil).Once()
				um.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
					Return(nil).Once()
			},
			check: func(t *testing.T, uc *model.UserChallenge) {
				assert.Equal(t, model.ChallengeInProgress, uc.Status)
			},
		},
		{
			name: "異常系: 存在しないチャレンジはNotFound",
			req:  &model.StartChallengeRequest{},
			setupMock: func(cm *mocks.ChallengeRepository, um *mocks.UserChallengeRepository) {
				cm.On("FindByID", mock.Anything, mock.Anything, challengeID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			mockChalRepo := new(mocks.ChallengeRepository)
			mockUserChalRepo := new(mocks.UserChallengeRepository)
			tt.setupMock(mockChalRepo, mockUserChalRepo)

			svc := NewChallengeService(db, mockChalRepo, mockUserChalRepo, testConfig())
			uc, err := svc.StartChallenge(ctx, userID, challengeID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, uc)
				tt.check(t, uc)
			}
			mockChalRepo.AssertExpectations(t)
			mockUserChalRepo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_CompleteChallenge(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	challengeID := uuid.New()
	startedAt := time.Now().Add(-10 * time.Minute)
	hrvBefore := 50.0
	hrvAfter := 62.5

	inProgress := func() *model.UserChallenge {
		return &model.UserChallenge{
			UserChallengeID: uuid.New(),
			UserID:          userID,
			ChallengeID:     challengeID,
			Status:          model.ChallengeInProgress,
			StartedAt:       &startedAt,
			HRVBefore:       &hrvBefore,
		}
	}

	tests := []struct {
		name      string
		req       *model.CompleteChallengeRequest
		setupMock func(um *mocks.UserChallengeRepository)
		wantErr   error
		check     func(t *testing.T, uc *model.UserChallenge)
	}{
		{
			name: "正常系: 初回完了は連続回数1",
			req:  &model.CompleteChallengeRequest{UserResponse: "落ち着いた", HRVAfter: &hrvAfter},
			setupMock: func(um *mocks.UserChallengeRepository) {
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(inProgress(), nil).Once()
				um.On("LatestCompleted", mock.Anything, mock.Anything, userID).
					Return(nil, model.ErrNotFound).Once()
				um.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
					Return(nil).Once()
			},
			check: func(t *testing.T, uc *model.UserChallenge) {
				assert.Equal(t, model.ChallengeCompleted, uc.Status)
				assert.Equal(t, 1, uc.CompletionStreak)
				require.NotNil(t, uc.CompletedAt)
				assert.Equal(t, "落ち着いた", uc.UserResponse)
				// hrv_improvement = 62.5 - 50.0
				require.NotNil(t, uc.HRVImprovement)
				assert.InDelta(t, 12.5, *uc.HRVImprovement, 0.0001)
			},
		},
		{
			name: "正常系: 直近の完了レコードから連続回数を引き継ぐ",
			req:  &model.CompleteChallengeRequest{},
			setupMock: func(um *mocks.UserChallengeRepository) {
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(inProgress(), nil).Once()
				um.On("LatestCompleted", mock.Anything, mock.Anything, userID).
					Return(&model.UserChallenge{CompletionStreak: 4}, nil).Once()
				um.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
					Return(nil).Once()
			},
			check: func(t *testing.T, uc *model.UserChallenge) {
				assert.Equal(t, 5, uc.CompletionStreak)
			},
		},
		{
			name: "異常系: 未開始のチャレンジは完了できない",
			req:  &model.CompleteChallengeRequest{},
			setupMock: func(um *mocks.UserChallengeRepository) {
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 進行中以外からの完了はInvalidState",
			req:  &model.CompleteChallengeRequest{},
			setupMock: func(um *mocks.UserChallengeRepository) {
				um.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
					Return(&model.UserChallenge{Status: model.ChallengeSkipped}, nil).Once()
			},
			wantErr: model.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			mockChalRepo := new(mocks.ChallengeRepository)
			mockUserChalRepo := new(mocks.UserChallengeRepository)
			tt.setupMock(mockUserChalRepo)

			svc := NewChallengeService(db, mockChalRepo, mockUserChalRepo, testConfig())
			uc, err := svc.CompleteChallenge(ctx, userID, challengeID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, uc)
				tt.check(t, uc)
			}
			mockUserChalRepo.AssertExpectations(t)
		})
	}
}

func TestChallengeService_SkipChallenge(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	challengeID := uuid.New()
	challenge := &model.Challenge{ChallengeID: challengeID, Title: "瞑想", Category: "meditation"}

	t.Run("正常系: レコードなしでもスキップできる", func(t *testing.T) {
		db := setupTestDB(t)
		mockChalRepo := new(mocks.ChallengeRepository)
		mockUserChalRepo := new(mocks.UserChallengeRepository)
		mockUserChalRepo.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
			Return(nil, model.ErrNotFound).Once()
		mockChalRepo.On("FindByID", mock.Anything, mock.Anything, challengeID).Return(challenge, nil).Once()
		mockUserChalRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
			Return(nil).Once()

		svc := NewChallengeService(db, mockChalRepo, mockUserChalRepo, testConfig())
		uc, err := svc.SkipChallenge(ctx, userID, challengeID)

		require.NoError(t, err)
		assert.Equal(t, model.ChallengeSkipped, uc.Status)
		mockChalRepo.AssertExpectations(t)
		mockUserChalRepo.AssertExpectations(t)
	})

	t.Run("正常系: 進行中からでもスキップできる", func(t *testing.T) {
		db := setupTestDB(t)
		mockChalRepo := new(mocks.ChallengeRepository)
		mockUserChalRepo := new(mocks.UserChallengeRepository)
		mockUserChalRepo.On("FindByUserAndChallenge", mock.Anything, mock.Anything, userID, challengeID).
			Return(&model.UserChallenge{
				UserChallengeID: uuid.New(),
				UserID:          userID,
				ChallengeID:     challengeID,
				Status:          model.ChallengeInProgress,
			}, nil).Once()
		mockUserChalRepo.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserChallenge")).
			Return(nil).Once()

		svc := NewChallengeService(db, mockChalRepo, mockUserChalRepo, testConfig())
		uc, err := svc.SkipChallenge(ctx, userID, challengeID)

		require.NoError(t, err)
		assert.Equal(t, model.ChallengeSkipped, uc.Status)
		mockUserChalRepo.AssertExpectations(t)
	})
}

// 実リポジトリを通した状態遷移の連携を確認する。
// 完了→スキップ→再完了で連続回数は2ではなく1に戻ること。
func TestChallengeService_StreakRestartAfterSkip(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	challengeID := uuid.New()

	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Challenge{
		ChallengeID:       challengeID,
		Title:             "深呼吸",
		Description:       "5分間の深呼吸",
		Category:          "breathing",
		EstimatedDuration: 5,
	}).Error)

	svc := NewChallengeService(db,
		repository.NewGormChallengeRepository(),
		repository.NewGormUserChallengeRepository(),
		testConfig())

	// 開始→完了で連続回数1
	_, err := svc.StartChallenge(ctx, userID, challengeID, &model.StartChallengeRequest{})
	require.NoError(t, err)
	completed, err := svc.CompleteChallenge(ctx, userID, challengeID, &model.CompleteChallengeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, completed.CompletionStreak)

	// スキップで連続が途切れる
	skipped, err := svc.SkipChallenge(ctx, userID, challengeID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeSkipped, skipped.Status)

	// 再開→完了: 直近の完了レコードが残っていないので1から数え直す
	_, err = svc.StartChallenge(ctx, userID, challengeID, &model.StartChallengeRequest{})
	require.NoError(t, err)
	completed, err = svc.CompleteChallenge(ctx, userID, challengeID, &model.CompleteChallengeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, completed.CompletionStreak)
	assert.Equal(t, model.ChallengeCompleted, completed.Status)
}

func TestApplyHRVImprovement(t *testing.T) {
	before := 48.0
	after := 60.0

	t.Run("正常系: 両方揃っていれば差分を設定する", func(t *testing.T) {
		uc := &model.UserChallenge{HRVBefore: &before, HRVAfter: &after}
		applyHRVImprovement(uc)
		require.NotNil(t, uc.HRVImprovement)
		assert.InDelta(t, 12.0, *uc.HRVImprovement, 0.0001)
	})

	t.Run("正常系: 片方しかないときは変更しない", func(t *testing.T) {
		uc := &model.UserChallenge{HRVBefore: &before}
		applyHRVImprovement(uc)
		assert.Nil(t, uc.HRVImprovement)
	})
}
