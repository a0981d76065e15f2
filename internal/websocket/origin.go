package websocket

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

const upgraderBufferSize = 1024

// allowedOriginsFromEnv parses ALLOWED_ORIGINS into a cleaned list, falling
// back to the local admin UI when nothing is configured.
func allowedOriginsFromEnv() []string {
	var origins []string
	for _, raw := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin := strings.TrimSpace(raw); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

// NewSecureUpgrader creates a WebSocket upgrader that only accepts
// connections from the configured admin UI origins. A missing Origin header
// is treated as same-origin and allowed.
func NewSecureUpgrader(logger *slog.Logger) websocket.Upgrader {
	allowed := allowedOriginsFromEnv()

	return websocket.Upgrader{
		ReadBufferSize:  upgraderBufferSize,
		WriteBufferSize: upgraderBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			for _, candidate := range allowed {
				if candidate == origin {
					return true
				}
			}

			if logger != nil {
				logger.Warn("rejected websocket connection",
					slog.String("origin", origin),
					slog.String("remote_ip", r.RemoteAddr))
			}
			return false
		},
	}
}

// DefaultUpgrader returns an upgrader that accepts any origin, for local
// development only.
func DefaultUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  upgraderBufferSize,
		WriteBufferSize: upgraderBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
}
