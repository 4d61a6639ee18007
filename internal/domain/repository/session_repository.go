package repository

import (
	"context"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
)

// SessionRepository persists sealed session credentials
type SessionRepository interface {
	Save(ctx context.Context, rec *entity.SessionRecord) error
	// Get returns apperror.ErrNotFound when no record exists
	Get(ctx context.Context, id string) (*entity.SessionRecord, error)
	Touch(ctx context.Context, id string, lastSeen, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
