package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

// Save inserts the record or replaces the tokens and expiry of an existing one
func (r *sessionRepository) Save(ctx context.Context, rec *entity.SessionRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "access_token", "refresh_token", "expires_at", "last_seen_at"}),
		}).
		Create(rec).Error
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*entity.SessionRecord, error) {
	var rec entity.SessionRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sessionRepository) Touch(ctx context.Context, id string, lastSeen, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.SessionRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_seen_at": lastSeen,
			"expires_at":   expiresAt,
		}).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.SessionRecord{}, "id = ?", id).Error
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&entity.SessionRecord{}, "user_id = ?", userID).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(Expired(now)).
		Delete(&entity.SessionRecord{})
	return res.RowsAffected, res.Error
}
