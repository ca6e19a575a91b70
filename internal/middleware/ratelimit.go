package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go_wellness_keep/internal/webutil"

	"golang.org/x/time/rate"
)

// ipMeta はIPごとのリミッターと最終アクセス時刻
type ipMeta struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*ipMeta
	limit   rate.Limit
	burst   int
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*ipMeta),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
	// 古いエントリは定期的に掃除する
	go rl.cleanupLoop()
	return rl
}

func (rl *ipRateLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, client := range rl.clients {
			if time.Since(client.lastSeen) > 3*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *ipRateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[ip] = &ipMeta{limiter, time.Now()}
		return limiter
	}

	client.lastSeen = time.Now()
	return client.limiter
}

// RateLimitMiddleware はIPアドレス単位のトークンバケット制限ミドルウェア
func RateLimitMiddleware(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	rl := newIPRateLimiter(requestsPerSecond, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !rl.getVisitor(ip).Allow() {
				w.Header().Set("Retry-After", "60")
				webutil.RespondWithError(w, http.StatusTooManyRequests, "リクエストが多すぎます。しばらくしてから再試行してください。")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
