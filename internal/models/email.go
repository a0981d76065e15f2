package models

import (
	"time"
)

// Email type tags recorded on sent and received messages.
const (
	EmailTypeAcknowledgment = "inquiry_acknowledgment"
	EmailTypeReply          = "reply"
)

// Email represents one message sent or received within a thread. Records are
// created on every successful send (or inbound delivery) and never mutated.
// Conversation order is the SentAt timestamp; no separate sequence counter is
// kept, so two messages recorded in the same instant have no defined order.
type Email struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ThreadID    string    `gorm:"not null;index;type:varchar(36)" json:"thread_id"`
	MessageID   string    `gorm:"size:255" json:"message_id"`
	FromEmail   string    `gorm:"not null;size:255" json:"from_email"`
	ToEmail     string    `gorm:"not null;size:255" json:"to_email"`
	Subject     string    `gorm:"size:500" json:"subject"`
	HTMLContent string    `json:"html_content,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
	EmailType   string    `gorm:"size:50" json:"email_type"`
	IsFromAdmin bool      `gorm:"default:false" json:"is_from_admin"`
	SentAt      time.Time `gorm:"autoCreateTime;index" json:"sent_at"`

	// Relationships
	Thread      Thread            `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	Attachments []EmailAttachment `gorm:"foreignKey:EmailID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// TableName returns the table name for Email
func (Email) TableName() string {
	return "emails"
}

// EmailListItem is a lightweight version for thread views, without bodies.
type EmailListItem struct {
	ID              string    `json:"id"`
	ThreadID        string    `json:"thread_id"`
	FromEmail       string    `json:"from_email"`
	ToEmail         string    `json:"to_email"`
	Subject         string    `json:"subject"`
	EmailType       string    `json:"email_type"`
	IsFromAdmin     bool      `json:"is_from_admin"`
	SentAt          time.Time `json:"sent_at"`
	AttachmentCount int       `json:"attachment_count"`
}
