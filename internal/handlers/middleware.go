package handlers

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/talentflow/internal/common"
	"golang.org/x/time/rate"
)

const requestIDKey = "request_id"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http",
			slog.String("request_id", requestIDFrom(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		)
	}
}

// bucketIdleTTL is how long an unused bucket survives before a sweep drops it.
const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per key. Buckets idle for longer
// than bucketIdleTTL are swept on a later Allow call.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*bucket
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*bucket),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	now := r.now()
	if now.Sub(r.lastSweep) >= bucketIdleTTL {
		r.sweep(now)
	}
	b, ok := r.limiters[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.limiters[key] = b
	}
	b.lastSeen = now
	r.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// sweep must be called with mu held.
func (r *RateLimiter) sweep(now time.Time) {
	for key, b := range r.limiters {
		if now.Sub(b.lastSeen) >= bucketIdleTTL {
			delete(r.limiters, key)
		}
	}
	r.lastSweep = now
}

func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

// RateLimit rejects requests once the client IP has spent its bucket.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			respondError(c, common.NewError(common.CodeRateLimited, "too many stage changes, slow down", nil))
			return
		}
		c.Next()
	}
}

