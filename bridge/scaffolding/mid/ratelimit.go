package mid

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/environment"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds the per client request budget. A zero PerMinute
// disables limiting.
type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE" default:"0"`
	Burst     int `env:"RATE_LIMIT_BURST" default:"20"`
}

// LoadRateLimitConfig reads RateLimitConfig from the environment under prefix.
func LoadRateLimitConfig(prefix string) (RateLimitConfig, error) {
	var cfg RateLimitConfig
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return RateLimitConfig{}, fmt.Errorf("parsing rate limit config: %w", err)
	}
	return cfg, nil
}

// Enabled reports whether the config asks for limiting.
func (c RateLimitConfig) Enabled() bool {
	return c.PerMinute > 0
}

type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (cl *clientLimiters) get(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	limiter, exists := cl.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(cl.limit, cl.burst)
		cl.limiters[client] = limiter
	}
	return limiter
}

// RateLimit refuses requests from a client that exceeded its budget with
// a ResourceExhausted error. A disabled config passes every request through.
func RateLimit(cfg RateLimitConfig) web.Middleware {
	if !cfg.Enabled() {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return next
		}
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	cl := &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		burst:    burst,
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			if !cl.get(clientIP(r)).Allow() {
				return errs.Newf(errs.ResourceExhausted, "Rate limit exceeded")
			}
			return next(ctx, r)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
