package database

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/stockflow-dashboard/internal/config"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "nested", "dash.db")}

	db, err := Open(cfg, false, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	assert.True(t, db.Migrator().HasTable(&entity.SessionRecord{}))
	assert.True(t, db.Migrator().HasTable(&entity.IdempotencyKey{}))
	assert.True(t, db.Migrator().HasIndex(&entity.IdempotencyKey{}, "idx_idempotency_session_key"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false, zap.NewNop())
	assert.Error(t, err)
}
