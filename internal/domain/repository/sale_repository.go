package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// SaleFilter narrows sale listings
type SaleFilter struct {
	Search        string // client name
	ClientID      *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	From          *time.Time
	To            *time.Time
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create inserts the sale and its items.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID loads a sale with its items in position order.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	// Delete removes the sale and its items.
	Delete(ctx context.Context, id uuid.UUID) error
}
