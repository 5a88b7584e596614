package repository

import (
	"context"
	"time"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response for the endpoint and client supplied key
	GetByKey(ctx context.Context, endpoint, key string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now and reports how many
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
