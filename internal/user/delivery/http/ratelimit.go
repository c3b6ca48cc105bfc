package http

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taller-sys/taller-backend/pkg/logger"
)

// LoginRateLimiter throttles login attempts per client IP using a Redis
// sliding window. Keeps brute-force attempts off the bcrypt path.
type LoginRateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
}

// NewLoginRateLimiter creates a rate limiter for the login endpoint
func NewLoginRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow reports whether the request is within the limit, and if not,
// how long the caller should wait.
func (rl *LoginRateLimiter) Allow(r *http.Request) (bool, time.Duration) {
	identifier := clientIP(r)
	key := fmt.Sprintf("ratelimit:login:%s", identifier)
	ctx := r.Context()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	// Count requests in current window
	countCmd := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})

	// Set expiration
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Logger.Error().
			Err(err).
			Str("identifier", identifier).
			Msg("Rate limiter error")
		// On error, allow the request but log it
		return true, 0
	}

	count := countCmd.Val()
	if count >= int64(rl.maxRequests) {
		logger.Logger.Warn().
			Str("identifier", identifier).
			Int("limit", rl.maxRequests).
			Msg("Login rate limit exceeded")
		return false, rl.window
	}

	return true, 0
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
