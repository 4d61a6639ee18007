package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicate submissions
type IdempotencyKey struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_session_key;size:255;not null"` // The idempotency key from client
	SessionID    string    `gorm:"uniqueIndex:idx_idempotency_session_key;size:64;not null"`  // Session that made the request
	Endpoint     string    `gorm:"size:255;not null"`                                         // e.g. "POST /api/v1/pos/checkout"
	RequestHash  string    `gorm:"size:64"`                                                   // SHA256 of the request body
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate assigns an ID
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
