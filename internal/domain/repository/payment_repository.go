package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
)

// PaymentRepository is the append-only payment ledger
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListByInstallment returns payments oldest first.
	ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]entity.Payment, error)
	// ListByInstallments groups payments by installment id.
	ListByInstallments(ctx context.Context, installmentIDs []uuid.UUID) (map[uuid.UUID][]entity.Payment, error)
	// DeleteBySale is only used by the sale cascade.
	DeleteBySale(ctx context.Context, saleID uuid.UUID) error
}
