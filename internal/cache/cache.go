package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss はキーが存在しないことを表す
var ErrCacheMiss = errors.New("cache: key not found")

// Cache はダッシュボード合成結果などの短命な値を保持するキャッシュ。
// 値はJSONにシリアライズして保存する。
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NoopCache は常にミスするキャッシュ (Redis未設定時のフォールバック)
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrCacheMiss
}

func (c *NoopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NoopCache) Close() error {
	return nil
}
