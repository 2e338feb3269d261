package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	// Allow records one hit for key and reports whether it is within the
	// limit, plus the time until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type bucket struct {
	count int
	until time.Time
}

// MemoryLimiter keeps windows in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	per     time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter(limit int, per time.Duration) *MemoryLimiter {
	return &MemoryLimiter{limit: limit, per: per, buckets: make(map[string]*bucket), now: time.Now}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	b, ok := m.buckets[key]
	if !ok || now.After(b.until) {
		if len(m.buckets) > 10000 {
			m.sweep(now)
		}
		b = &bucket{until: now.Add(m.per)}
		m.buckets[key] = b
	}
	if b.count >= m.limit {
		return false, b.until.Sub(now), nil
	}
	b.count++
	return true, b.until.Sub(now), nil
}

func (m *MemoryLimiter) sweep(now time.Time) {
	for k, b := range m.buckets {
		if now.After(b.until) {
			delete(m.buckets, k)
		}
	}
}

// RedisLimiter shares windows between instances through INCR and EXPIRE.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	per    time.Duration
	prefix string
}

func NewRedisLimiter(client redis.Cmdable, limit int, per time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, per: per, prefix: "imagestudio:ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	window := time.Now().UnixNano() / int64(l.per)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(window, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.per)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, fmt.Errorf("ratelimit: redis: %w", err)
	}
	reset := time.Duration(int64(l.per) - time.Now().UnixNano()%int64(l.per))
	return incr.Val() <= int64(l.limit), reset, nil
}

// RateLimit rejects requests over the limiter's budget with 429. Limiter
// errors are logged and the request is let through.
func RateLimit(limiter Limiter, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, reset, err := limiter.Allow(r.Context(), clientIPForRateLimit(r))
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				secs := int(reset.Round(time.Second) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIPForRateLimit keys on the connection address only. RealIP has
// already rewritten RemoteAddr for trusted proxies; forwarding headers seen
// here are client-controlled.
func clientIPForRateLimit(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
