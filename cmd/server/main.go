package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khanhchel99/nkc-mail-backend/internal/api"
	"github.com/khanhchel99/nkc-mail-backend/internal/config"
	"github.com/khanhchel99/nkc-mail-backend/internal/database"
	"github.com/khanhchel99/nkc-mail-backend/internal/logger"
	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	smtpserver "github.com/khanhchel99/nkc-mail-backend/internal/smtp"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
	"github.com/khanhchel99/nkc-mail-backend/internal/websocket"
)

func main() {
	// Setup logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(log)

	slog.Info("Starting NKC Mail Backend Server...")

	// Load configuration
	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg.LogConfig(log)

	secLogger := logger.NewSecurityLogger()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize file storage
	fileStorage, err := storage.NewLocalStorage(cfg.AttachmentStoragePath)
	if err != nil {
		slog.Error("Failed to initialize file storage", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	threadRepo := repository.NewThreadRepository(db)
	emailRepo := repository.NewEmailRepository(db)

	// Template registry and outbound dispatch
	registry := templates.NewRegistry()
	transport := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:          cfg.OutboundSMTPHost,
		Port:          cfg.OutboundSMTPPort,
		Username:      cfg.OutboundSMTPUsername,
		Password:      cfg.OutboundSMTPPassword,
		From:          cfg.FromEmail,
		MessageDomain: cfg.ReplyDomain,
		Timeout:       cfg.TransportTimeout,
	})
	dispatcher := mailer.NewDispatcher(registry, transport, threadRepo, emailRepo, cfg.FromEmail, cfg.ReplyDomain, log)

	// WebSocket hub for live thread updates
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// HTTP server
	router := api.NewRouter(&api.RouterConfig{
		DB:             db,
		FileStorage:    fileStorage,
		Registry:       registry,
		Dispatcher:     dispatcher,
		WSHub:          wsHub,
		Logger:         log,
		SecLogger:      secLogger,
		APIKey:         cfg.APIKey,
		AllowedOrigins: splitOrigins(cfg.AllowedOrigins),
		RateLimit:      int(cfg.RateLimitRequests),
		RateBurst:      cfg.RateLimitBurst,
		EnableAuth:     cfg.APIKey != "",
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		slog.Info("Starting HTTP server", slog.String("addr", addr))
		if err := router.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Inbound SMTP server for customer replies
	backend := smtpserver.NewBackend(&smtpserver.BackendConfig{
		ThreadRepo:  threadRepo,
		EmailRepo:   emailRepo,
		FileStorage: fileStorage,
		WSHub:       wsHub,
		ReplyDomain: cfg.ReplyDomain,
		SecLogger:   secLogger,
		Logger:      log,
	})

	smtpCfg := smtpserver.LoadServerConfigFromEnv()
	smtpCfg.Addr = fmt.Sprintf(":%d", cfg.SMTPPort)
	smtpSrv := smtpserver.NewSecureServer(backend, smtpCfg)

	go func() {
		slog.Info("Starting SMTP server", slog.String("addr", smtpSrv.Addr))
		if err := smtpSrv.ListenAndServe(); err != nil {
			slog.Error("SMTP server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", slog.Any("error", err))
	}
	if err := smtpSrv.Shutdown(ctx); err != nil {
		slog.Error("SMTP server shutdown error", slog.Any("error", err))
	}

	slog.Info("Server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
