package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
)

// probePaths are reachable without credentials so orchestrators can
// check liveness.
func isProbePath(path string) bool {
	return strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/ready")
}

func unauthorized(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

// APIKeyAuth checks the Authorization header against the API_KEY environment
// variable using a constant-time comparison. Health probes are exempt, and an
// unset key disables the check entirely so local development works without
// credentials.
func APIKeyAuth(logger *slog.Logger) echo.MiddlewareFunc {
	validAPIKey := os.Getenv("API_KEY")
	if validAPIKey == "" && logger != nil {
		logger.Warn("API_KEY not set - API is UNSECURED")
	}

	warn := func(msg string, c echo.Context) {
		if logger != nil {
			logger.Warn(msg,
				slog.String("ip", c.RealIP()),
				slog.String("path", c.Path()))
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isProbePath(c.Path()) || validAPIKey == "" {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				warn("missing authorization header", c)
				return unauthorized("missing authorization header")
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if subtle.ConstantTimeCompare([]byte(token), []byte(validAPIKey)) != 1 {
				warn("invalid API key attempt", c)
				return unauthorized("invalid API key")
			}

			return next(c)
		}
	}
}
