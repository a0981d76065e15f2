// Package smtp receives customer replies over SMTP and files them into
// their email threads.
package smtp

import (
	"crypto/tls"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/khanhchel99/nkc-mail-backend/internal/logger"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"github.com/khanhchel99/nkc-mail-backend/internal/websocket"
)

// Server hardening defaults. Messages above the size cap are refused at
// the protocol level before parsing starts.
const (
	DefaultMaxMessageSize = 25 * 1024 * 1024
	DefaultMaxRecipients  = 10
	DefaultReadTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultMaxLineLength  = 2000
)

// Backend implements the go-smtp Backend interface. It only accepts mail
// addressed to a thread's plus-addressed reply address.
type Backend struct {
	threadRepo  repository.ThreadRepository
	emailRepo   repository.EmailRepository
	fileStorage storage.FileStorage
	wsHub       *websocket.Hub
	replyDomain string
	secLogger   *logger.SecurityLogger
	logger      *slog.Logger
}

// BackendConfig carries the collaborators a Backend needs.
type BackendConfig struct {
	ThreadRepo  repository.ThreadRepository
	EmailRepo   repository.EmailRepository
	FileStorage storage.FileStorage
	WSHub       *websocket.Hub
	ReplyDomain string
	SecLogger   *logger.SecurityLogger
	Logger      *slog.Logger
}

func NewBackend(cfg *BackendConfig) *Backend {
	return &Backend{
		threadRepo:  cfg.ThreadRepo,
		emailRepo:   cfg.EmailRepo,
		fileStorage: cfg.FileStorage,
		wsHub:       cfg.WSHub,
		replyDomain: cfg.ReplyDomain,
		secLogger:   cfg.SecLogger,
		logger:      cfg.Logger,
	}
}

// NewSession starts a session for one inbound SMTP connection.
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	if b.logger != nil {
		b.logger.Info("new SMTP connection", slog.String("remote_addr", c.Conn().RemoteAddr().String()))
	}
	return NewSession(b), nil
}

// ServerConfig holds the listener and hardening settings for the inbound
// SMTP server.
type ServerConfig struct {
	Addr           string
	Domain         string
	MaxMessageSize int64
	MaxRecipients  int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowInsecure  bool
	TLSConfig      *tls.Config
}

// withDefaults fills any unset limits with the hardened defaults.
func (cfg *ServerConfig) withDefaults() *ServerConfig {
	out := *cfg
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = DefaultMaxMessageSize
	}
	if out.MaxRecipients <= 0 {
		out.MaxRecipients = DefaultMaxRecipients
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = DefaultReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = DefaultWriteTimeout
	}
	return &out
}

// NewSecureServer builds the go-smtp server around the backend with
// message size, recipient, timeout and line length limits applied.
func NewSecureServer(backend *Backend, cfg *ServerConfig) *smtp.Server {
	cfg = cfg.withDefaults()

	s := smtp.NewServer(backend)
	s.Addr = cfg.Addr
	s.Domain = cfg.Domain
	s.MaxMessageBytes = cfg.MaxMessageSize
	s.MaxRecipients = cfg.MaxRecipients
	s.ReadTimeout = cfg.ReadTimeout
	s.WriteTimeout = cfg.WriteTimeout
	s.AllowInsecureAuth = cfg.AllowInsecure
	s.MaxLineLength = DefaultMaxLineLength
	if cfg.TLSConfig != nil {
		s.TLSConfig = cfg.TLSConfig
	}
	return s
}

// LoadServerConfigFromEnv reads the SMTP_* environment variables.
// Malformed values fall back to the defaults rather than failing startup.
func LoadServerConfigFromEnv() *ServerConfig {
	cfg := &ServerConfig{
		Addr:           getEnvOrDefault("SMTP_ADDR", ":2525"),
		Domain:         getEnvOrDefault("SMTP_DOMAIN", "localhost"),
		AllowInsecure:  getEnvBool("SMTP_ALLOW_INSECURE", false),
		MaxMessageSize: getEnvInt64("SMTP_MAX_MESSAGE_SIZE"),
		ReadTimeout:    getEnvDuration("SMTP_READ_TIMEOUT"),
		WriteTimeout:   getEnvDuration("SMTP_WRITE_TIMEOUT"),
	}

	if raw := os.Getenv("SMTP_MAX_RECIPIENTS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.MaxRecipients = n
		}
	}

	certFile := os.Getenv("SMTP_TLS_CERT")
	keyFile := os.Getenv("SMTP_TLS_KEY")
	if certFile != "" && keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt64(key string) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func getEnvDuration(key string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return 0
}
