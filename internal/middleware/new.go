package middleware

import (
	"ecomart-chatbot/pkg/log"
)

// Config configures the HTTP middlewares.
type Config struct {
	RateLimitPerMin int
	SecureCookie    bool
}

type Middleware struct {
	l       log.Logger
	cfg     Config
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = DefaultRateLimitPerMin
	}
	return Middleware{
		l:       l,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RateLimitPerMin),
	}
}
