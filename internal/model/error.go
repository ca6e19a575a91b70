// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidState   = errors.New("invalid state transition")
	ErrConflict       = errors.New("resource conflict")
	ErrForbidden      = errors.New("forbidden")
	ErrDependency     = errors.New("dependency unavailable")
	ErrInternalServer = errors.New("internal server error")
)

// ErrorDetail はクライアントに返すエラーの詳細情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・メッセージと根本原因をまとめたアプリケーションエラー
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

// Unwrap は errors.Is / errors.As でセンチネルエラーと比較できるようにする
func (e *AppError) Unwrap() error {
	return e.Err
}

type ContextKey string

const (
	// UserIDKey は認証ミドルウェアがコンテキストに格納するユーザーIDのキー
	UserIDKey ContextKey = "userID"
)
