package webutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go_wellness_keep/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドは拒否します。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}

// QueryInt はクエリパラメータを整数として読む。未指定・不正値はdefaultValue。
func QueryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// QueryDate はクエリパラメータを日付 (RFC3339 または 2006-01-02) として読む。
// 未指定はnil、不正値はエラー。
func QueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, model.NewAppError("INVALID_INPUT", "日付の形式が正しくありません。", key, model.ErrInvalidInput)
	}
	return &t, nil
}

// QueryString はクエリパラメータを読み、空文字ならnilを返す
func QueryString(r *http.Request, key string) *string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	return &raw
}
