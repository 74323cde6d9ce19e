package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/config"
	"github.com/surejsai/GenericProductFluxer/models"
	"golang.org/x/time/rate"
)

const (
	limiterIdle = time.Hour
	sweepEvery  = 5 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets holds one token bucket per caller identity.
type buckets struct {
	cfg config.RateLimitConfig

	mu   sync.Mutex
	byID map[string]*bucket
}

func (b *buckets) get(id string, now time.Time) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.byID[id]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(rate.Limit(b.cfg.RequestsPerSecond), b.cfg.Burst)}
		b.byID[id] = bk
	}
	bk.lastSeen = now
	return bk.limiter
}

// sweep drops buckets idle since before cutoff.
func (b *buckets) sweep(cutoff time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, bk := range b.byID {
		if bk.lastSeen.Before(cutoff) {
			delete(b.byID, id)
		}
	}
}

// RateLimit applies a token bucket per API key, or per client IP when the
// request is unauthenticated. Buckets idle for an hour are dropped.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	b := &buckets{cfg: cfg, byID: make(map[string]*bucket)}

	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		for now := range ticker.C {
			b.sweep(now.Add(-limiterIdle))
		}
	}()

	return func(c *gin.Context) {
		id := c.GetString(identityKey)
		if id == "" {
			id = c.ClientIP()
		}
		if !b.get(id, time.Now()).Allow() {
			abort(c, http.StatusTooManyRequests, models.ErrCodeRateLimited, "rate limit exceeded, slow down")
			return
		}
		c.Next()
	}
}
