package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/database"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Nop()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "repo.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(openTestDB(t))
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	missing, err := repo.GetByKey(ctx, "POST /api/v1/sales", "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "k1",
		Endpoint:     "POST /api/v1/sales",
		RequestHash:  "aaa",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    now.Add(-time.Minute),
	}))

	// an expired key is replaced in place
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "k1",
		Endpoint:     "POST /api/v1/sales",
		RequestHash:  "bbb",
		ResponseCode: 201,
		ResponseBody: `{"success":true,"n":2}`,
		ExpiresAt:    now.Add(time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "POST /api/v1/sales", "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bbb", got.RequestHash)
	assert.False(t, got.IsExpired(now))

	other, err := repo.GetByKey(ctx, "POST /api/v1/installments/x/payments", "k1")
	require.NoError(t, err)
	assert.Nil(t, other)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
