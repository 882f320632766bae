package middleware

import (
	"inkscan/config"
	"inkscan/pkg/log"
)

// Middleware bundles the HTTP ingest protections: request identity,
// API-key auth, body signature verification, and per-source rate limiting.
type Middleware struct {
	l       log.Logger
	cfg     config.IngestConfig
	limiter *rateLimiter
}

func New(l log.Logger, cfg config.IngestConfig) Middleware {
	return Middleware{
		l:       l,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RateLimitPerMin),
	}
}
