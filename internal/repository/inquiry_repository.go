package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"gorm.io/gorm"
)

// InquiryRepository defines the interface for inquiry data access
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	GetByReference(ctx context.Context, reference string) (*models.Inquiry, error)
	List(ctx context.Context, limit, offset int) ([]models.Inquiry, int64, error)
}

// inquiryRepository implements InquiryRepository using GORM
type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new InquiryRepository instance
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// Create creates a new inquiry
func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	result := r.db.WithContext(ctx).Create(inquiry)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("inquiry with reference '%s' already exists: %w", inquiry.Reference, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create inquiry: %w", result.Error)
	}
	return nil
}

// GetByID retrieves an inquiry by its ID
func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	result := r.db.WithContext(ctx).First(&inquiry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by ID: %w", result.Error)
	}
	return &inquiry, nil
}

// GetByReference retrieves an inquiry by its storefront reference
func (r *inquiryRepository) GetByReference(ctx context.Context, reference string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	result := r.db.WithContext(ctx).Where("reference = ?", reference).First(&inquiry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by reference: %w", result.Error)
	}
	return &inquiry, nil
}

// List retrieves inquiries with pagination, newest first
func (r *inquiryRepository) List(ctx context.Context, limit, offset int) ([]models.Inquiry, int64, error) {
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var inquiries []models.Inquiry
	result := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&inquiries)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", result.Error)
	}

	return inquiries, total, nil
}
