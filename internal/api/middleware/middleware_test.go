package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serveThrough(mw echo.MiddlewareFunc, handler echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(mw)
	e.Add(req.Method, req.URL.Path, handler)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogger_EmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := serveThrough(RequestLogger(logger), func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	for _, field := range []string{"method", "GET", "path", "/test", "status", "latency"} {
		assert.Contains(t, buf.String(), field)
	}
}

func TestRequestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/notfound", nil)
	rec := serveThrough(RequestLogger(logger), func(c echo.Context) error {
		return c.String(http.StatusNotFound, "Not Found")
	}, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "404")
}

func TestRequestLogger_LogsFailedRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	serveThrough(RequestLogger(logger), func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}, req)

	assert.Contains(t, buf.String(), "/error")
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	for _, origin := range []string{"http://localhost:3000", "https://app.example.com"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", origin)
		rec := serveThrough(CORS(), func(c echo.Context) error {
			return c.String(http.StatusOK, "OK")
		}, req)

		assert.Equal(t, http.StatusOK, rec.Code, origin)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := serveThrough(CORS(), func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, req)

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRecover_CatchesPanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	var rec *httptest.ResponseRecorder
	assert.NotPanics(t, func() {
		rec = serveThrough(Recover(), func(c echo.Context) error {
			panic("test panic")
		}, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/normal", nil)
	rec := serveThrough(Recover(), func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
