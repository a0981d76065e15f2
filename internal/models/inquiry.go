package models

import (
	"time"
)

// Inquiry represents a wholesale inquiry submitted through the storefront.
// The storefront owns inquiry lifecycle; this service mirrors the fields the
// mail engine needs (acknowledgment data, inbound routing) and keys threads
// by the storefront's reference string.
type Inquiry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Reference     string    `gorm:"uniqueIndex;not null;size:64" json:"reference"`
	CustomerName  string    `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string    `gorm:"not null;size:255" json:"customer_email"`
	CompanyName   string    `gorm:"size:255" json:"company_name,omitempty"`
	Message       string    `json:"message,omitempty"`
	ItemCount     int       `gorm:"default:0" json:"item_count"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

// TableName returns the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}
