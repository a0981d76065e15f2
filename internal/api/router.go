// Package api wires the admin HTTP surface: REST routes, middleware, and
// the WebSocket endpoint for live thread updates.
package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/handlers"
	"github.com/khanhchel99/nkc-mail-backend/internal/api/middleware"
	"github.com/khanhchel99/nkc-mail-backend/internal/logger"
	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
	"github.com/khanhchel99/nkc-mail-backend/internal/websocket"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB          *gorm.DB
	FileStorage storage.FileStorage
	Registry    *templates.Registry
	Dispatcher  *mailer.Dispatcher
	WSHub       *websocket.Hub
	Logger      *slog.Logger
	SecLogger   *logger.SecurityLogger
	// Security configuration
	APIKey         string   // API key for authentication (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	RateLimit      int      // Requests per second (0 = use env default)
	RateBurst      int      // Burst size for rate limiter
	EnableAuth     bool     // Enable API key authentication
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Security middleware, outermost first
	e.Use(middleware.Recover())
	e.Use(middleware.SecureHeaders())

	if len(cfg.AllowedOrigins) > 0 {
		os.Setenv("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, ","))
	}
	e.Use(middleware.SecureCORS())

	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(float64(cfg.RateLimit), cfg.RateBurst, cfg.Logger))
	} else {
		e.Use(middleware.RateLimiter(cfg.Logger))
	}

	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Repositories
	inquiryRepo := repository.NewInquiryRepository(cfg.DB)
	threadRepo := repository.NewThreadRepository(cfg.DB)
	emailRepo := repository.NewEmailRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB, cfg.FileStorage)

	// Handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	inquiryHandler := handlers.NewInquiryHandler(inquiryRepo, cfg.Dispatcher, cfg.Logger)
	templateHandler := handlers.NewTemplateHandler(cfg.Registry)
	threadHandler := handlers.NewThreadHandler(threadRepo, emailRepo, cfg.Dispatcher)
	emailHandler := handlers.NewEmailHandler(emailRepo, cfg.Dispatcher)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentRepo, emailRepo, cfg.FileStorage, cfg.SecLogger)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// WebSocket endpoint for live thread updates
	if cfg.WSHub != nil {
		upgrader := websocket.NewSecureUpgrader(cfg.Logger)
		e.GET("/ws", func(c echo.Context) error {
			conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
			if err != nil {
				return err
			}
			client := websocket.NewClient(cfg.WSHub, conn, cfg.Logger)
			cfg.WSHub.Register(client)
			go client.WritePump()
			go client.ReadPump()
			return nil
		})
	}

	// API routes
	api := e.Group("/api")

	if cfg.EnableAuth && cfg.APIKey != "" {
		os.Setenv("API_KEY", cfg.APIKey)
	}
	api.Use(middleware.APIKeyAuth(cfg.Logger))

	// Inquiry routes
	inquiries := api.Group("/inquiries")
	inquiries.POST("", inquiryHandler.Create)
	inquiries.GET("", inquiryHandler.List)
	inquiries.GET("/:reference", inquiryHandler.Get)
	inquiries.GET("/:reference/thread", inquiryHandler.GetThread)

	// Template routes
	templateRoutes := api.Group("/templates")
	templateRoutes.GET("", templateHandler.List)
	templateRoutes.GET("/:id", templateHandler.Get)
	templateRoutes.POST("/:id/preview", templateHandler.Preview)

	// Thread routes
	threads := api.Group("/threads")
	threads.GET("", threadHandler.List)
	threads.GET("/:id", threadHandler.Get)
	threads.GET("/:id/emails", threadHandler.ListEmails)
	threads.POST("/:id/reply", threadHandler.Reply)

	// Email routes
	emails := api.Group("/emails")
	emails.POST("/send", emailHandler.Send)
	emails.GET("/:id", emailHandler.Get)

	// Attachment routes (nested under emails)
	emails.GET("/:email_id/attachments", attachmentHandler.List)

	// Attachment routes (standalone)
	attachments := api.Group("/attachments")
	attachments.GET("/:id", attachmentHandler.Get)
	attachments.GET("/:id/download", attachmentHandler.Download)

	return e
}
