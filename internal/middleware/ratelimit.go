package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	pkgErrors "inkscan/pkg/errors"
	"inkscan/pkg/response"
)

// RateLimit throttles ingest per client IP. Zero or negative config
// disables it entirely.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.RateLimitPerMin <= 0 {
			c.Next()
			return
		}

		source := clientIP(c.Request)
		if err := m.limiter.Allow(source); err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: %v", err)
			response.Error(c, pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Too many requests"), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientIP resolves the caller address, preferring proxy headers over
// the socket peer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

const (
	// limiterSources caps how many distinct clients hold a bucket at once.
	limiterSources = 1000
	// limiterIdleTTL ages out sources that stopped sending.
	limiterIdleTTL = 5 * time.Minute
)

// rateLimiter hands out one token bucket per source. Idle sources age
// out of the LRU so the bucket map cannot grow without bound.
type rateLimiter struct {
	buckets *expirable.LRU[string, *rate.Limiter]
	perSec  rate.Limit
	burst   int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	if requestsPerMin <= 0 {
		requestsPerMin = 60
	}
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](limiterSources, nil, limiterIdleTTL),
		perSec:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst:   burst,
	}
}

func (rl *rateLimiter) Allow(source string) error {
	bucket, ok := rl.buckets.Get(source)
	if !ok {
		bucket = rate.NewLimiter(rl.perSec, rl.burst)
		rl.buckets.Add(source, bucket)
	}
	if !bucket.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", source)
	}
	return nil
}
