package entity

import (
	"time"
)

// SessionRecord persists a signed-in operator's backend credentials, sealed.
// The cart is never persisted.
type SessionRecord struct {
	ID           string    `gorm:"primaryKey;size:64"`
	UserID       string    `gorm:"size:64;not null;index"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	LastSeenAt   time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for SessionRecord
func (SessionRecord) TableName() string {
	return "dashboard_sessions"
}

// IsExpired checks whether the session passed its idle expiry
func (s *SessionRecord) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
