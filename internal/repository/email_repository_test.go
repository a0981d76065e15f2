package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EmailRepositoryTestSuite is the test suite for EmailRepository
type EmailRepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   EmailRepository
	thread *models.Thread
}

// SetupSuite runs once before all tests
func (s *EmailRepositoryTestSuite) SetupSuite() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.Thread{}, &models.Email{}, &models.EmailAttachment{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewEmailRepository(db)
}

// TearDownSuite runs once after all tests
func (s *EmailRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data and seed a thread
func (s *EmailRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM email_attachments")
	s.db.Exec("DELETE FROM emails")
	s.db.Exec("DELETE FROM email_threads")

	s.thread = &models.Thread{
		ID:            "thread-1",
		InquiryID:     "INQ-1",
		CustomerEmail: "customer@example.com",
	}
	require.NoError(s.T(), s.db.Create(s.thread).Error)
}

// TestEmailRepositoryTestSuite runs the test suite
func TestEmailRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EmailRepositoryTestSuite))
}

func (s *EmailRepositoryTestSuite) newEmail() *models.Email {
	return &models.Email{
		ThreadID:    s.thread.ID,
		MessageID:   "<msg@nkcfurniture.com>",
		FromEmail:   "sales@nkcfurniture.com",
		ToEmail:     "customer@example.com",
		Subject:     "Your quote is ready",
		HTMLContent: "<p>Hello</p>",
		TextContent: "Hello",
		EmailType:   "quote_ready",
		IsFromAdmin: true,
	}
}

// ==================== Create Tests ====================

func (s *EmailRepositoryTestSuite) TestCreate_Success() {
	// Arrange
	email := s.newEmail()

	// Act
	err := s.repo.Create(context.Background(), email)

	// Assert
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), email.ID)
	assert.NotZero(s.T(), email.SentAt)
}

func (s *EmailRepositoryTestSuite) TestCreate_KeepsCallerID() {
	// Arrange
	email := s.newEmail()
	email.ID = "explicit-id"

	// Act
	err := s.repo.Create(context.Background(), email)

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "explicit-id", email.ID)
}

// ==================== CreateWithAttachments Tests ====================

func (s *EmailRepositoryTestSuite) TestCreateWithAttachments_Success() {
	// Arrange
	email := s.newEmail()
	attachments := []models.EmailAttachment{
		{Filename: "quote.pdf", ContentType: "application/pdf", FilePath: "/data/quote.pdf", SizeBytes: 2048},
		{Filename: "catalog.pdf", ContentType: "application/pdf", FilePath: "/data/catalog.pdf", SizeBytes: 4096},
	}

	// Act
	err := s.repo.CreateWithAttachments(context.Background(), email, attachments)

	// Assert
	assert.NoError(s.T(), err)

	result, err := s.repo.GetByID(context.Background(), email.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), result.Attachments, 2)
	for _, a := range result.Attachments {
		assert.Equal(s.T(), email.ID, a.EmailID)
	}
}

func (s *EmailRepositoryTestSuite) TestCreateWithAttachments_NoAttachments() {
	// Arrange
	email := s.newEmail()

	// Act
	err := s.repo.CreateWithAttachments(context.Background(), email, nil)

	// Assert
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), email.ID)
}

// ==================== GetByID Tests ====================

func (s *EmailRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	result, err := s.repo.GetByID(context.Background(), "missing")

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Nil(s.T(), result)
}

// ==================== ListByThread Tests ====================

func (s *EmailRepositoryTestSuite) TestListByThread_ConversationOrder() {
	// Arrange - insert out of chronological order
	now := time.Now()
	for _, e := range []struct {
		id     string
		sentAt time.Time
	}{
		{"second", now.Add(-1 * time.Minute)},
		{"third", now},
		{"first", now.Add(-2 * time.Minute)},
	} {
		email := s.newEmail()
		email.ID = e.id
		email.SentAt = e.sentAt
		require.NoError(s.T(), s.db.Create(email).Error)
	}

	// Act
	results, total, err := s.repo.ListByThread(context.Background(), s.thread.ID, 10, 0)

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), total)
	require.Len(s.T(), results, 3)
	assert.Equal(s.T(), "first", results[0].ID)
	assert.Equal(s.T(), "second", results[1].ID)
	assert.Equal(s.T(), "third", results[2].ID)
}

func (s *EmailRepositoryTestSuite) TestListByThread_IncludesAttachmentCount() {
	// Arrange
	email := s.newEmail()
	attachments := []models.EmailAttachment{
		{Filename: "quote.pdf", ContentType: "application/pdf", FilePath: "/data/quote.pdf"},
	}
	require.NoError(s.T(), s.repo.CreateWithAttachments(context.Background(), email, attachments))

	// Act
	results, _, err := s.repo.ListByThread(context.Background(), s.thread.ID, 10, 0)

	// Assert
	assert.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), int64(1), results[0].AttachmentCount)
}

func (s *EmailRepositoryTestSuite) TestListByThread_Pagination() {
	// Arrange
	now := time.Now()
	for i := 0; i < 5; i++ {
		email := s.newEmail()
		email.SentAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(s.T(), s.repo.Create(context.Background(), email))
	}

	// Act
	page, total, err := s.repo.ListByThread(context.Background(), s.thread.ID, 2, 2)

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(5), total)
	assert.Len(s.T(), page, 2)
}

// ==================== CountByThread Tests ====================

func (s *EmailRepositoryTestSuite) TestCountByThread() {
	// Arrange
	require.NoError(s.T(), s.repo.Create(context.Background(), s.newEmail()))
	require.NoError(s.T(), s.repo.Create(context.Background(), s.newEmail()))

	// Act
	count, err := s.repo.CountByThread(context.Background(), s.thread.ID)

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), count)
}

func (s *EmailRepositoryTestSuite) TestCountByThread_Empty() {
	// Act
	count, err := s.repo.CountByThread(context.Background(), "no-thread")

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count)
}
