package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// InstallmentFilter narrows installment listings. Status filters on the
// resolved status, so Today is required whenever Status is set.
type InstallmentFilter struct {
	Status   *enum.InstallmentStatus
	Today    time.Time
	Search   string // client name
	SaleID   *uuid.UUID
	ClientID *uuid.UUID
	DueFrom  *time.Time
	DueTo    *time.Time
}

// InstallmentStats aggregates installments by resolved status.
type InstallmentStats struct {
	Total            int64           `json:"total"`
	Pending          int64           `json:"pending"`
	Overdue          int64           `json:"overdue"`
	Paid             int64           `json:"paid"`
	OutstandingValue decimal.Decimal `json:"outstanding_value"`
	OverdueValue     decimal.Decimal `json:"overdue_value"`
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []entity.Installment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Installment, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Installment, error)
	// ListBySale returns a sale's installments by installment number.
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Installment, error)
	// List returns installments ordered by due date.
	List(ctx context.Context, filter InstallmentFilter, params *pagination.PaginationParams) ([]entity.Installment, int64, error)
	ListAll(ctx context.Context, filter InstallmentFilter) ([]entity.Installment, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) error
	DeleteBySale(ctx context.Context, saleID uuid.UUID) error
	Stats(ctx context.Context, filter InstallmentFilter) (*InstallmentStats, error)
}
