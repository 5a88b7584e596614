package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs returns the products found, keyed by id. Missing ids are absent.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search, category string) ([]entity.Product, int64, error)
	Count(ctx context.Context) (int64, error)
}
