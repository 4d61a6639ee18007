package repository

import (
	"context"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
)

// IdempotencyRepository stores the responses replayed for repeated mutations.
// Keys are scoped to the session that sent them.
type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the key is unknown or expired
	GetByKey(ctx context.Context, key, sessionID string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteBySession drops every key of a closed session
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
