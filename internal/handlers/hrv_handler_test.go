// internal/handlers/hrv_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_wellness_keep/internal/handlers"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/service/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createRequest はJSONボディつきのリクエストを組み立てる。
// userID が nil のときは X-User-ID ヘッダーを付けない。
func createRequest(t *testing.T, method, path string, body interface{}, userID *uuid.UUID) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		assert.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	return req
}

func TestHRVHandler_LogReading(t *testing.T) {
	userID := uuid.New()

	mockHRVService := mocks.NewMockHRVService(t)
	mockStatsService := mocks.NewMockStatsService(t)
	hrvHandler := handlers.NewHRVHandler(mockHRVService, mockStatsService, testLogger())
	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware) // 開発用認証ミドルウェア
	router.Post("/api/v1/hrv", hrvHandler.LogReading)

	score := 72.5
	tooHigh := 150.0
	validReqBody := model.LogHRVRequest{HRVScore: &score}
	expectedReading := &model.HRVReading{
		ReadingID:        uuid.New(),
		UserID:           userID,
		HRVScore:         score,
		StressLevel:      model.StressModerate,
		RecoveryStatus:   model.RecoveryGood,
		PredictedEmotion: "calm",
		Date:             time.Now(),
	}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedCode   string
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:   "Success - Valid request",
			userID: &userID,
			body:   validReqBody,
			setupMock: func() {
				mockHRVService.On("LogReading", mock.AnythingOfType("*context.valueCtx"), userID, &validReqBody).
					Return(expectedReading, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body []byte) {
				var resp model.HRVReading
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, expectedReading.ReadingID, resp.ReadingID)
				assert.Equal(t, score, resp.HRVScore)
				assert.Equal(t, model.StressModerate, resp.StressLevel)
			},
		},
		{
			name:           "Fail - HRV score above range",
			userID:         &userID,
			body:           model.LogHRVRequest{HRVScore: &tooHigh},
			setupMock:      func() { /* バリデーションで弾かれるのでServiceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			checkBody: func(t *testing.T, body []byte) {
				var errResp model.APIErrorResponse
				assert.NoError(t, json.Unmarshal(body, &errResp))
				assert.Contains(t, errResp.Error.Message, "HRVスコア")
				assert.Equal(t, "hrv_score", errResp.Error.Field)
			},
		},
		{
			name:           "Fail - Missing hrv_score",
			userID:         &userID,
			body:           model.LogHRVRequest{},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Fail - Missing X-User-ID header",
			userID:         nil,
			body:           validReqBody,
			setupMock:      func() { /* ミドルウェアで弾かれる */ },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Fail - Service returns dependency error",
			userID: &userID,
			body:   validReqBody,
			setupMock: func() {
				mockHRVService.On("LogReading", mock.AnythingOfType("*context.valueCtx"), userID, &validReqBody).
					Return(nil, model.NewAppError("DEPENDENCY_ERROR", "HRV測定の保存に失敗しました。", "", model.ErrDependency)).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "DEPENDENCY_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/hrv", tc.body, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				var errResp model.APIErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.Equal(t, tc.expectedCode, errResp.Error.Code)
			}
			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.Bytes())
			}

			mockHRVService.AssertExpectations(t)
		})
	}
}

// 認証ミドルウェアを通らず、コンテキストにユーザーIDがないまま
// ハンドラに到達したときは 403 を返すこと。
func TestHRVHandler_LogReading_NoUserContext(t *testing.T) {
	mockHRVService := mocks.NewMockHRVService(t)
	mockStatsService := mocks.NewMockStatsService(t)
	hrvHandler := handlers.NewHRVHandler(mockHRVService, mockStatsService, testLogger())
	router := chi.NewRouter()
	router.Post("/api/v1/hrv", hrvHandler.LogReading) // ミドルウェアなし

	userID := uuid.New()
	score := 60.0
	req := createRequest(t, "POST", "/api/v1/hrv", model.LogHRVRequest{HRVScore: &score}, &userID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	var errResp model.APIErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "UNAUTHORIZED", errResp.Error.Code)
}

func TestHRVHandler_GetStats(t *testing.T) {
	userID := uuid.New()

	mockHRVService := mocks.NewMockHRVService(t)
	mockStatsService := mocks.NewMockStatsService(t)
	hrvHandler := handlers.NewHRVHandler(mockHRVService, mockStatsService, testLogger())
	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Get("/api/v1/hrv/stats", hrvHandler.GetStats)

	t.Run("Success - Days from query string", func(t *testing.T) {
		expected := &model.HRVStatsResponse{
			PeriodDays: 30,
			Current:    model.PeriodStatistics{AvgHRV: 60, AvgStressLevel: 2},
			Previous:   model.PeriodStatistics{AvgHRV: 50, AvgStressLevel: 2},
			Trend:      model.TrendImproving,
		}
		mockStatsService.On("HRVStats", mock.AnythingOfType("*context.valueCtx"), userID, 30).
			Return(expected, nil).Once()

		req := createRequest(t, "GET", "/api/v1/hrv/stats?days=30", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.HRVStatsResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 30, resp.PeriodDays)
		assert.Equal(t, model.TrendImproving, resp.Trend)

		mockStatsService.AssertExpectations(t)
	})
}
