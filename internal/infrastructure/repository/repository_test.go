package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.SessionRecord{}, &entity.IdempotencyKey{}))
	return db
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	rec := &entity.SessionRecord{ID: "s1", UserID: "u1", AccessToken: "sealed-a", ExpiresAt: now.Add(time.Hour), LastSeenAt: now}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "sealed-a", got.AccessToken)

	rec.AccessToken = "sealed-b"
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "sealed-b", got.AccessToken)

	later := now.Add(2 * time.Hour)
	require.NoError(t, repo.Touch(ctx, "s1", now.Add(time.Minute), later))
	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(later))

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSessionRepositoryDeleteExpiredAndByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &entity.SessionRecord{ID: "old", UserID: "u1", AccessToken: "x", ExpiresAt: now.Add(-time.Minute), LastSeenAt: now}))
	require.NoError(t, repo.Save(ctx, &entity.SessionRecord{ID: "live", UserID: "u1", AccessToken: "x", ExpiresAt: now.Add(time.Hour), LastSeenAt: now}))
	require.NoError(t, repo.Save(ctx, &entity.SessionRecord{ID: "other", UserID: "u2", AccessToken: "x", ExpiresAt: now.Add(time.Hour), LastSeenAt: now}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteByUser(ctx, "u1"))
	_, err = repo.Get(ctx, "live")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.Get(ctx, "other")
	assert.NoError(t, err)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", SessionID: "s1", Endpoint: "POST /api/v1/pos/checkout",
		ResponseCode: 201, ResponseBody: `{"success":true}`, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k2", SessionID: "s1", Endpoint: "POST /api/v1/pos/checkout",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "k1", "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)
	assert.NotEmpty(t, got.ID)

	other, err := repo.GetByKey(ctx, "k1", "s2")
	require.NoError(t, err)
	assert.Nil(t, other)

	expired, err := repo.GetByKey(ctx, "k2", "s1")
	require.NoError(t, err)
	assert.Nil(t, expired)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	dup := repo.Create(ctx, &entity.IdempotencyKey{Key: "k1", SessionID: "s1", Endpoint: "x", ResponseCode: 200, ExpiresAt: time.Now().Add(time.Hour)})
	assert.Error(t, dup)
}

func TestIdempotencyRepositoryDeleteBySession(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))
	expires := time.Now().Add(time.Hour)

	for _, k := range []entity.IdempotencyKey{
		{Key: "k1", SessionID: "s1", Endpoint: "POST /api/v1/pos/checkout", ResponseCode: 201, ExpiresAt: expires},
		{Key: "k2", SessionID: "s1", Endpoint: "POST /api/v1/stock/adjust", ResponseCode: 200, ExpiresAt: expires},
		{Key: "k1", SessionID: "s2", Endpoint: "POST /api/v1/pos/checkout", ResponseCode: 201, ExpiresAt: expires},
	} {
		k := k
		require.NoError(t, repo.Create(ctx, &k))
	}

	require.NoError(t, repo.DeleteBySession(ctx, "s1"))

	gone, err := repo.GetByKey(ctx, "k2", "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := repo.GetByKey(ctx, "k1", "s2")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
