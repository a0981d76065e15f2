package repository

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeFileStorage records deletions without touching the filesystem
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) Save(filename string, content io.Reader) (string, int64, error) {
	return "ab/" + filename, 0, nil
}

func (f *fakeFileStorage) Get(filePath string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeFileStorage) Delete(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

var _ storage.FileStorage = (*fakeFileStorage)(nil)

// AttachmentRepositoryTestSuite is the test suite for AttachmentRepository
type AttachmentRepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    AttachmentRepository
	files   *fakeFileStorage
	emailID string
}

// SetupSuite runs once before all tests
func (s *AttachmentRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.Thread{}, &models.Email{}, &models.EmailAttachment{})
	require.NoError(s.T(), err)

	s.db = db
}

// TearDownSuite runs once after all tests
func (s *AttachmentRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data and seed a thread and email
func (s *AttachmentRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM email_attachments")
	s.db.Exec("DELETE FROM emails")
	s.db.Exec("DELETE FROM email_threads")

	s.files = &fakeFileStorage{}
	s.repo = NewAttachmentRepository(s.db, s.files)

	thread := &models.Thread{ID: "thread-1", InquiryID: "INQ-1", CustomerEmail: "customer@example.com"}
	require.NoError(s.T(), s.db.Create(thread).Error)

	email := &models.Email{
		ID:        "email-1",
		ThreadID:  thread.ID,
		FromEmail: "sales@nkcfurniture.com",
		ToEmail:   "customer@example.com",
	}
	require.NoError(s.T(), s.db.Create(email).Error)
	s.emailID = email.ID
}

// TestAttachmentRepositoryTestSuite runs the test suite
func TestAttachmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentRepositoryTestSuite))
}

// ==================== Create / Get Tests ====================

func (s *AttachmentRepositoryTestSuite) TestCreateAndGetByID() {
	// Arrange
	attachment := &models.EmailAttachment{
		EmailID:     s.emailID,
		Filename:    "quote.pdf",
		ContentType: "application/pdf",
		FilePath:    "ab/quote.pdf",
		SizeBytes:   2048,
	}

	// Act
	err := s.repo.Create(context.Background(), attachment)

	// Assert
	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), attachment.ID)

	result, err := s.repo.GetByID(context.Background(), attachment.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "quote.pdf", result.Filename)
	assert.Equal(s.T(), int64(2048), result.SizeBytes)
}

func (s *AttachmentRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	result, err := s.repo.GetByID(context.Background(), 9999)

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Nil(s.T(), result)
}

// ==================== ListByEmail Tests ====================

func (s *AttachmentRepositoryTestSuite) TestListByEmail() {
	// Arrange
	for _, name := range []string{"quote.pdf", "catalog.pdf"} {
		attachment := &models.EmailAttachment{
			EmailID:  s.emailID,
			Filename: name,
			FilePath: "ab/" + name,
		}
		require.NoError(s.T(), s.repo.Create(context.Background(), attachment))
	}

	// Act
	results, err := s.repo.ListByEmail(context.Background(), s.emailID)

	// Assert
	assert.NoError(s.T(), err)
	assert.Len(s.T(), results, 2)
}

func (s *AttachmentRepositoryTestSuite) TestListByEmail_Empty() {
	// Act
	results, err := s.repo.ListByEmail(context.Background(), "no-email")

	// Assert
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), results)
}

// ==================== Delete Tests ====================

func (s *AttachmentRepositoryTestSuite) TestDelete_RemovesRowAndFile() {
	// Arrange
	attachment := &models.EmailAttachment{
		EmailID:  s.emailID,
		Filename: "quote.pdf",
		FilePath: "ab/quote.pdf",
	}
	require.NoError(s.T(), s.repo.Create(context.Background(), attachment))

	// Act
	err := s.repo.Delete(context.Background(), attachment.ID)

	// Assert
	assert.NoError(s.T(), err)

	_, err = s.repo.GetByID(context.Background(), attachment.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Equal(s.T(), []string{"ab/quote.pdf"}, s.files.deleted)
}

func (s *AttachmentRepositoryTestSuite) TestDelete_NotFound() {
	// Act
	err := s.repo.Delete(context.Background(), 9999)

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Empty(s.T(), s.files.deleted)
}
