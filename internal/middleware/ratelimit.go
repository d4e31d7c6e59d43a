package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/response"
)

// RateLimitStore decides whether a client may make another request.
type RateLimitStore interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// RateLimiter rejects clients that exceed their per-interval budget.
// Store failures let the request through.
type RateLimiter struct {
	store RateLimitStore
	rate  int
	log   zerolog.Logger
}

// NewRateLimiter picks the Redis store when rdb is non-nil and the in-memory
// store otherwise (e.g., 120 requests per minute).
func NewRateLimiter(rdb *redis.Client, rate int, interval time.Duration, log zerolog.Logger) *RateLimiter {
	var store RateLimitStore
	if rdb != nil {
		store = NewRedisStore(rdb, rate, interval)
	} else {
		store = NewMemoryStore(rate, interval)
	}
	return &RateLimiter{
		store: store,
		rate:  rate,
		log:   log.With().Str("component", "rate_limiter").Logger(),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := rl.store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			rl.log.Warn().Err(err).Msg("rate limit store unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		if !allowed {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// ─── In-memory token bucket ────────────────────────────────────────────

// MemoryStore implements a simple per-IP token bucket inside the process.
type MemoryStore struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	rate        int           // Tokens per interval
	interval    time.Duration // Refill interval
	now         func() time.Time
	lastCleanup time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

func NewMemoryStore(rate int, interval time.Duration) *MemoryStore {
	return &MemoryStore{
		visitors:    make(map[string]*visitor),
		rate:        rate,
		interval:    interval,
		now:         time.Now,
		lastCleanup: time.Now(),
	}
}

func (s *MemoryStore) Allow(_ context.Context, ip string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cleanup(now)

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{tokens: s.rate, lastSeen: now}
		s.visitors[ip] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/s.interval) * s.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > s.rate {
			v.tokens = s.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}
	v.tokens--
	return true, nil
}

// cleanup drops visitors idle for three intervals, at most once per interval.
// Caller holds mu.
func (s *MemoryStore) cleanup(now time.Time) {
	if now.Sub(s.lastCleanup) < s.interval {
		return
	}
	s.lastCleanup = now
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > 3*s.interval {
			delete(s.visitors, ip)
		}
	}
}

// ─── Redis fixed window ────────────────────────────────────────────────

// RedisStore counts requests per IP in fixed windows shared by every instance.
type RedisStore struct {
	rdb      *redis.Client
	rate     int
	interval time.Duration
	now      func() time.Time
}

func NewRedisStore(rdb *redis.Client, rate int, interval time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, rate: rate, interval: interval, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, ip string) (bool, error) {
	windowStart := s.now().Truncate(s.interval)
	key := config.CacheKey.RateLimitKey(ip, windowStart)

	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.interval)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(s.rate), nil
}
