package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(&config.DatabaseConfig{Driver: "sqlite", Path: path, LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"clients", "products", "sales", "sale_items", "installments", "payments", "idempotency_keys"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("installments", "idx_installments_sale_number"))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Info, gormLogLevel("DEBUG"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
