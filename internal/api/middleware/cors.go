package middleware

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SecureCORS returns CORS middleware for the admin UI. Origins come from the
// ALLOWED_ORIGINS environment variable; wildcard origins are stripped in
// production so credentials are never exposed cross-site.
func SecureCORS() echo.MiddlewareFunc {
	origins := parseOrigins(os.Getenv("ALLOWED_ORIGINS"))

	if os.Getenv("APP_ENV") == "production" {
		kept := origins[:0]
		for _, origin := range origins {
			if origin != "*" {
				kept = append(kept, origin)
			}
		}
		origins = kept
	}

	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func parseOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
