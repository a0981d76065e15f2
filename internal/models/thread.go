package models

import (
	"time"
)

// Thread represents the email conversation attached to a single inquiry.
// At most one thread exists per inquiry, enforced by the unique index on
// InquiryID. Threads are created lazily on the first send and never deleted
// by this service.
type Thread struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InquiryID     string    `gorm:"uniqueIndex;not null;size:64" json:"inquiry_id"`
	CustomerEmail string    `gorm:"not null;size:255" json:"customer_email"`
	CustomerName  string    `gorm:"size:255" json:"customer_name"`
	Subject       string    `gorm:"size:500" json:"subject"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Emails []Email `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"emails,omitempty"`
}

// TableName returns the table name for Thread
func (Thread) TableName() string {
	return "email_threads"
}

// ThreadWithEmailCount is used for API list responses that include the
// number of emails in each thread.
type ThreadWithEmailCount struct {
	Thread
	EmailCount int64 `json:"email_count"`
}
