package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"gorm.io/gorm"
)

// AttachmentRepository manages attachment metadata rows. The file bytes
// themselves live in FileStorage; rows only carry the storage path.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.EmailAttachment) error
	GetByID(ctx context.Context, id uint) (*models.EmailAttachment, error)
	ListByEmail(ctx context.Context, emailID string) ([]models.EmailAttachment, error)
	Delete(ctx context.Context, id uint) error
}

type attachmentRepository struct {
	db          *gorm.DB
	fileStorage storage.FileStorage
}

func NewAttachmentRepository(db *gorm.DB, fileStorage storage.FileStorage) AttachmentRepository {
	return &attachmentRepository{db: db, fileStorage: fileStorage}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.EmailAttachment) error {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uint) (*models.EmailAttachment, error) {
	var attachment models.EmailAttachment
	err := r.db.WithContext(ctx).First(&attachment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attachment by ID: %w", err)
	}
	return &attachment, nil
}

// ListByEmail returns every attachment stored for one email record.
func (r *attachmentRepository) ListByEmail(ctx context.Context, emailID string) ([]models.EmailAttachment, error) {
	var attachments []models.EmailAttachment
	err := r.db.WithContext(ctx).Where("email_id = ?", emailID).Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// Delete removes the metadata row first and then the stored file. A
// failed file removal is ignored since the row is already gone and the
// path may have been cleaned up out of band.
func (r *attachmentRepository) Delete(ctx context.Context, id uint) error {
	attachment, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&models.EmailAttachment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if attachment.FilePath != "" && r.fileStorage != nil {
		_ = r.fileStorage.Delete(attachment.FilePath)
	}
	return nil
}
