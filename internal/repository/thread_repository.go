package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"gorm.io/gorm"
)

// ThreadRepository defines the interface for email thread data access
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, id string) (*models.Thread, error)
	GetByInquiryID(ctx context.Context, inquiryID string) (*models.Thread, error)
	GetOrCreate(ctx context.Context, thread *models.Thread) (*models.Thread, bool, error)
	GetWithEmails(ctx context.Context, id string) (*models.Thread, error)
	GetByInquiryIDWithEmails(ctx context.Context, inquiryID string) (*models.Thread, error)
	List(ctx context.Context, limit, offset int) ([]models.ThreadWithEmailCount, int64, error)
}

// threadRepository implements ThreadRepository using GORM
type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository instance
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// Create creates a new thread. An ID is generated when the caller does not
// supply one.
func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	if thread.ID == "" {
		thread.ID = uuid.NewString()
	}
	result := r.db.WithContext(ctx).Create(thread)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("thread for inquiry '%s' already exists: %w", thread.InquiryID, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create thread: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a thread by its ID
func (r *threadRepository) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	var thread models.Thread
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&thread)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get thread by ID: %w", result.Error)
	}
	return &thread, nil
}

// GetByInquiryID retrieves the thread for an inquiry reference
func (r *threadRepository) GetByInquiryID(ctx context.Context, inquiryID string) (*models.Thread, error) {
	var thread models.Thread
	result := r.db.WithContext(ctx).Where("inquiry_id = ?", inquiryID).First(&thread)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get thread by inquiry ID: %w", result.Error)
	}
	return &thread, nil
}

// GetOrCreate retrieves the thread for the inquiry or creates it if absent.
// Returns the thread, a boolean indicating if it was created, and any error.
// Two concurrent first-sends for the same inquiry race here; the unique index
// on inquiry_id rejects the loser, which then re-fetches the winner's row.
func (r *threadRepository) GetOrCreate(ctx context.Context, thread *models.Thread) (*models.Thread, bool, error) {
	existing, err := r.GetByInquiryID(ctx, thread.InquiryID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if err := r.Create(ctx, thread); err != nil {
		// Handle race condition - another request might have created it
		if errors.Is(err, ErrDuplicateEntry) {
			existing, err = r.GetByInquiryID(ctx, thread.InquiryID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return thread, true, nil
}

// GetWithEmails retrieves a thread by ID with its emails in conversation order
func (r *threadRepository) GetWithEmails(ctx context.Context, id string) (*models.Thread, error) {
	var thread models.Thread
	result := r.db.WithContext(ctx).
		Preload("Emails", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC")
		}).
		Preload("Emails.Attachments").
		Where("id = ?", id).
		First(&thread)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get thread with emails: %w", result.Error)
	}
	return &thread, nil
}

// GetByInquiryIDWithEmails retrieves the thread for an inquiry with its emails
// in conversation order
func (r *threadRepository) GetByInquiryIDWithEmails(ctx context.Context, inquiryID string) (*models.Thread, error) {
	var thread models.Thread
	result := r.db.WithContext(ctx).
		Preload("Emails", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC")
		}).
		Preload("Emails.Attachments").
		Where("inquiry_id = ?", inquiryID).
		First(&thread)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get thread with emails: %w", result.Error)
	}
	return &thread, nil
}

// List retrieves threads with pagination and email counts, newest first
func (r *threadRepository) List(ctx context.Context, limit, offset int) ([]models.ThreadWithEmailCount, int64, error) {
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Thread{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count threads: %w", err)
	}

	var results []models.ThreadWithEmailCount

	query := `
		SELECT
			t.*,
			COALESCE((SELECT COUNT(*) FROM emails e WHERE e.thread_id = t.id), 0) as email_count
		FROM email_threads t
		ORDER BY t.created_at DESC
		LIMIT ? OFFSET ?
	`

	if err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list threads: %w", err)
	}

	return results, total, nil
}
