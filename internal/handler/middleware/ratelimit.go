package middleware

import (
	"net/http"
	"sync"
	"time"

	"slotbooker/internal/handler/httperr"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleEviction = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per requester on the public routes.
// Exposure determinism means a scraper replaying requests gets the same
// answer anyway; the limiter just caps the load of trying.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
}

func NewRateLimiter(cfg config.ExposureConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(cfg.RatePerSec),
		burst:   cfg.RateBurst,
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetRequesterKey(c)
		if key == "" || key == AnonymousRequester {
			key = "ip:" + c.ClientIP()
		}

		if !r.allow(key) {
			c.Header("Retry-After", "1")
			httperr.AbortWithError(c, http.StatusTooManyRequests,
				errs.New("rate limit exceeded"), "RATE_LIMITED", "Too many requests", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cl, ok := r.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.rate, r.burst)}
		r.clients[key] = cl
		r.evictIdleLocked(now)
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}

func (r *RateLimiter) evictIdleLocked(now time.Time) {
	for k, cl := range r.clients {
		if now.Sub(cl.lastSeen) > limiterIdleEviction {
			delete(r.clients, k)
		}
	}
}
