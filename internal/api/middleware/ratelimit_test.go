package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedEcho(rps float64, burst int) *echo.Echo {
	e := echo.New()
	e.Use(RateLimiterWithConfig(rps, burst, nil))
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})
	return e
}

func hitFrom(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if ip != "" {
		req.Header.Set("X-Real-IP", ip)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	e := rateLimitedEcho(10, 20)

	rec := hitFrom(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_RejectsBeyondLimit(t *testing.T) {
	e := rateLimitedEcho(1, 1)

	assert.Equal(t, http.StatusOK, hitFrom(e, "").Code)

	rec := hitFrom(e, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_BucketsPerIP(t *testing.T) {
	e := rateLimitedEcho(1, 1)

	assert.Equal(t, http.StatusOK, hitFrom(e, "192.168.1.1").Code)
	// A different client is unaffected by the first client's bucket
	assert.Equal(t, http.StatusOK, hitFrom(e, "192.168.1.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(e, "192.168.1.1").Code)
}

func TestRateLimiter_BurstConsumedThenRejected(t *testing.T) {
	e := rateLimitedEcho(1, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(e, "").Code, "request %d should pass", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(e, "").Code)
}

func TestIPRateLimiter_ReusesBucketPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(10, 20)

	first := limiter.GetLimiter("192.168.1.1")
	assert.Same(t, first, limiter.GetLimiter("192.168.1.1"))
	assert.NotSame(t, first, limiter.GetLimiter("192.168.1.2"))
}

func TestIPRateLimiter_CleanupResetsBuckets(t *testing.T) {
	limiter := NewIPRateLimiter(10, 20)
	stale := limiter.GetLimiter("192.168.1.1")

	limiter.CleanupOldEntries()

	assert.NotSame(t, stale, limiter.GetLimiter("192.168.1.1"))
}
