package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"gorm.io/gorm"
)

// EmailRepository defines the interface for email record data access
type EmailRepository interface {
	Create(ctx context.Context, email *models.Email) error
	CreateWithAttachments(ctx context.Context, email *models.Email, attachments []models.EmailAttachment) error
	GetByID(ctx context.Context, id string) (*models.Email, error)
	ListByThread(ctx context.Context, threadID string, limit, offset int) ([]models.EmailListItem, int64, error)
	CountByThread(ctx context.Context, threadID string) (int64, error)
}

// emailRepository implements EmailRepository using GORM
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new EmailRepository instance
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// Create creates a new email record
func (r *emailRepository) Create(ctx context.Context, email *models.Email) error {
	if email.ID == "" {
		email.ID = uuid.NewString()
	}
	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		return fmt.Errorf("failed to create email: %w", result.Error)
	}
	return nil
}

// CreateWithAttachments creates an email record with its attachments in a transaction
func (r *emailRepository) CreateWithAttachments(ctx context.Context, email *models.Email, attachments []models.EmailAttachment) error {
	if email.ID == "" {
		email.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(email).Error; err != nil {
			return fmt.Errorf("failed to create email: %w", err)
		}

		for i := range attachments {
			attachments[i].EmailID = email.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return fmt.Errorf("failed to create attachment: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an email by its ID with preloaded attachments
func (r *emailRepository) GetByID(ctx context.Context, id string) (*models.Email, error) {
	var email models.Email
	result := r.db.WithContext(ctx).Preload("Attachments").Where("id = ?", id).First(&email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email by ID: %w", result.Error)
	}
	return &email, nil
}

// ListByThread retrieves emails for a thread with pagination, in conversation
// order (sent_at ascending)
func (r *emailRepository) ListByThread(ctx context.Context, threadID string, limit, offset int) ([]models.EmailListItem, int64, error) {
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Email{}).Where("thread_id = ?", threadID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count emails: %w", err)
	}

	var results []models.EmailListItem

	query := `
		SELECT
			e.id,
			e.thread_id,
			e.from_email,
			e.to_email,
			e.subject,
			e.email_type,
			e.is_from_admin,
			e.sent_at,
			COALESCE((SELECT COUNT(*) FROM email_attachments a WHERE a.email_id = e.id), 0) as attachment_count
		FROM emails e
		WHERE e.thread_id = ?
		ORDER BY e.sent_at ASC
		LIMIT ? OFFSET ?
	`

	if err := r.db.WithContext(ctx).Raw(query, threadID, limit, offset).Scan(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list emails: %w", err)
	}

	return results, total, nil
}

// CountByThread counts email records in a thread
func (r *emailRepository) CountByThread(ctx context.Context, threadID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Email{}).Where("thread_id = ?", threadID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count emails: %w", result.Error)
	}
	return count, nil
}
