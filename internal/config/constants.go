// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "WellnessKeep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDashboardDays  = 7
	DefaultListLimit      = 20
	DefaultMaxListLimit   = 100
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)
