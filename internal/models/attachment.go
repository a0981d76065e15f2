package models

// EmailAttachment represents a file attached to an inbound customer reply.
// Outbound messages sent by this service never carry attachments.
type EmailAttachment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EmailID     string `gorm:"not null;index;type:varchar(36)" json:"email_id"`
	Filename    string `gorm:"size:255" json:"filename"`
	ContentType string `gorm:"size:100" json:"content_type"`
	FilePath    string `gorm:"size:500" json:"file_path"`
	SizeBytes   int64  `json:"size_bytes"`

	// Relationships
	Email Email `gorm:"foreignKey:EmailID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for EmailAttachment
func (EmailAttachment) TableName() string {
	return "email_attachments"
}
