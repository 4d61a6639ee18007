package repository

import (
	"time"

	"gorm.io/gorm"
)

// Unexpired returns a GORM scope that keeps rows whose expires_at is still ahead of now
func Unexpired(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at > ?", now)
	}
}

// Expired returns a GORM scope that keeps rows whose expires_at has passed
func Expired(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at <= ?", now)
	}
}

// ForSession scopes a query to one dashboard session
func ForSession(sessionID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("session_id = ?", sessionID)
	}
}
