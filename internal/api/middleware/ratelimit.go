package middleware

import (
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages one token bucket per client IP
type IPRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    b,
	}
}

// GetLimiter returns the rate limiter for the given IP, creating it on first
// sight
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(i.rate, i.burst)
		i.limiters[ip] = limiter
	}

	return limiter
}

// CleanupOldEntries drops all buckets so the map cannot grow without bound.
// TODO: track last-access time per IP and evict selectively.
func (i *IPRateLimiter) CleanupOldEntries() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.limiters = make(map[string]*rate.Limiter)
}

// limit wraps handlers with the shared per-IP check
func limit(limiter *IPRateLimiter, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.GetLimiter(ip).Allow() {
				if logger != nil {
					logger.Warn("rate limit exceeded",
						slog.String("ip", ip),
						slog.String("path", c.Path()))
				}

				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(429, map[string]string{
					"error":       "rate limit exceeded",
					"code":        "RATE_LIMITED",
					"retry_after": "60",
				})
			}

			return next(c)
		}
	}
}

// RateLimiter returns rate limiting middleware configured from
// RATE_LIMIT_REQUESTS and RATE_LIMIT_BURST
func RateLimiter(logger *slog.Logger) echo.MiddlewareFunc {
	requestsPerSecond := 10.0
	burst := 20

	if rps := os.Getenv("RATE_LIMIT_REQUESTS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			requestsPerSecond = v
		}
	}
	if b := os.Getenv("RATE_LIMIT_BURST"); b != "" {
		if v, err := strconv.Atoi(b); err == nil {
			burst = v
		}
	}

	limiter := NewIPRateLimiter(rate.Limit(requestsPerSecond), burst)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.CleanupOldEntries()
		}
	}()

	return limit(limiter, logger)
}

// RateLimiterWithConfig returns rate limiting middleware with explicit limits
func RateLimiterWithConfig(requestsPerSecond float64, burst int, logger *slog.Logger) echo.MiddlewareFunc {
	return limit(NewIPRateLimiter(rate.Limit(requestsPerSecond), burst), logger)
}
