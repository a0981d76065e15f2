// Package logger provides structured security and audit logging for the
// mail backend.
package logger

import (
	"log/slog"
	"os"
	"time"
)

// SecurityLogger records security-relevant events as structured JSON.
// Credentials and other secret material never reach the log stream.
type SecurityLogger struct {
	logger *slog.Logger
}

// NewSecurityLogger writes JSON events to stdout at info level.
func NewSecurityLogger() *SecurityLogger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &SecurityLogger{logger: slog.New(handler)}
}

// NewSecurityLoggerWithHandler routes events through a caller-supplied
// handler. Tests use this to capture output.
func NewSecurityLoggerWithHandler(handler slog.Handler) *SecurityLogger {
	return &SecurityLogger{logger: slog.New(handler)}
}

// warn emits one event with the shared event_type and timestamp fields.
func (s *SecurityLogger) warn(msg, eventType string, attrs ...any) {
	base := []any{
		slog.String("event_type", eventType),
	}
	base = append(base, attrs...)
	base = append(base, slog.Time("timestamp", time.Now().UTC()))
	s.logger.Warn(msg, base...)
}

// AuthFailure records a failed authentication attempt. The reason names
// the check that failed, never the presented credential.
func (s *SecurityLogger) AuthFailure(ip, path, reason string) {
	s.warn("authentication_failure", "auth_failure",
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("reason", reason),
	)
}

// RateLimitExceeded records a client pushed past its request budget.
func (s *SecurityLogger) RateLimitExceeded(ip, path string) {
	s.warn("rate_limit_exceeded", "rate_limit",
		slog.String("ip", ip),
		slog.String("path", path),
	)
}

// SuspiciousActivity records potentially malicious request patterns.
func (s *SecurityLogger) SuspiciousActivity(ip, path, activity string) {
	s.warn("suspicious_activity", "suspicious",
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("activity", activity),
	)
}

// PathTraversalAttempt records a request that tried to escape the
// attachment storage root.
func (s *SecurityLogger) PathTraversalAttempt(ip, path, attemptedPath string) {
	s.warn("path_traversal_attempt", "path_traversal",
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("attempted_path", attemptedPath),
	)
}

// InvalidOrigin records a websocket upgrade rejected by the origin check.
func (s *SecurityLogger) InvalidOrigin(ip, origin string) {
	s.warn("invalid_origin", "invalid_origin",
		slog.String("ip", ip),
		slog.String("origin", origin),
	)
}

// BlockedAttachment records an inbound attachment rejected by validation.
// Only the filename and reason are logged, never the content.
func (s *SecurityLogger) BlockedAttachment(sender, filename, reason string) {
	s.warn("blocked_attachment", "blocked_attachment",
		slog.String("sender", sender),
		slog.String("filename", filename),
		slog.String("reason", reason),
	)
}

// RejectedRecipient records an inbound SMTP recipient that did not
// resolve to an existing thread.
func (s *SecurityLogger) RejectedRecipient(sender, recipient, reason string) {
	s.warn("rejected_recipient", "rejected_recipient",
		slog.String("sender", sender),
		slog.String("recipient", recipient),
		slog.String("reason", reason),
	)
}

// SecurityEvent records an ad-hoc event with free-form details. Keys
// that look like secret material are dropped before logging.
func (s *SecurityLogger) SecurityEvent(eventType, ip string, details map[string]string) {
	attrs := []any{slog.String("ip", ip)}
	for k, v := range details {
		if isSensitiveKey(k) {
			continue
		}
		attrs = append(attrs, slog.String(k, v))
	}
	s.warn("security_event", eventType, attrs...)
}

func (s *SecurityLogger) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *SecurityLogger) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// GetLogger exposes the underlying slog.Logger for middleware wiring.
func (s *SecurityLogger) GetLogger() *slog.Logger {
	return s.logger
}

var sensitiveKeys = map[string]bool{
	"password":      true,
	"api_key":       true,
	"apikey":        true,
	"token":         true,
	"secret":        true,
	"authorization": true,
	"auth":          true,
	"credential":    true,
	"credentials":   true,
	"session":       true,
	"cookie":        true,
}

func isSensitiveKey(key string) bool {
	return sensitiveKeys[key]
}
