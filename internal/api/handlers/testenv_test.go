package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeTransport records outbound emails and can be told to fail
type fakeTransport struct {
	sent     []*mailer.OutboundEmail
	failWith error
}

func (f *fakeTransport) Send(ctx context.Context, email *mailer.OutboundEmail) (*mailer.SendResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.sent = append(f.sent, email)
	return &mailer.SendResult{MessageID: "<test-msg@nkcfurniture.com>"}, nil
}

// testEnv bundles the handler dependencies backed by an in-memory database
type testEnv struct {
	db         *gorm.DB
	inquiries  repository.InquiryRepository
	threads    repository.ThreadRepository
	emails     repository.EmailRepository
	transport  *fakeTransport
	dispatcher *mailer.Dispatcher
	registry   *templates.Registry
	echo       *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.Inquiry{}, &models.Thread{}, &models.Email{}, &models.EmailAttachment{})
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		inquiries: repository.NewInquiryRepository(db),
		threads:   repository.NewThreadRepository(db),
		emails:    repository.NewEmailRepository(db),
		registry:  templates.NewRegistry(),
		echo:      echo.New(),
	}
	env.rebuildDispatcher()
	return env
}

// reset clears all rows and gives the dispatcher a fresh transport
func (env *testEnv) reset() {
	env.db.Exec("DELETE FROM email_attachments")
	env.db.Exec("DELETE FROM emails")
	env.db.Exec("DELETE FROM email_threads")
	env.db.Exec("DELETE FROM inquiries")
	env.rebuildDispatcher()
}

func (env *testEnv) rebuildDispatcher() {
	env.transport = &fakeTransport{}
	env.dispatcher = mailer.NewDispatcher(
		env.registry,
		env.transport,
		env.threads,
		env.emails,
		"sales@nkcfurniture.com",
		"reply.nkcfurniture.com",
		slog.New(slog.DiscardHandler),
	)
}

func (env *testEnv) close() {
	sqlDB, _ := env.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// jsonRequest builds an echo context carrying a JSON body
func (env *testEnv) jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	return c, rec
}

// getRequest builds an echo context for a GET request
func (env *testEnv) getRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	return c, rec
}
