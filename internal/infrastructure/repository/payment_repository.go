package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment ledger repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("installment_id = ?", installmentID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByInstallments(ctx context.Context, installmentIDs []uuid.UUID) (map[uuid.UUID][]entity.Payment, error) {
	grouped := make(map[uuid.UUID][]entity.Payment, len(installmentIDs))
	if len(installmentIDs) == 0 {
		return grouped, nil
	}

	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("installment_id IN ?", installmentIDs).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		grouped[p.InstallmentID] = append(grouped[p.InstallmentID], p)
	}
	return grouped, nil
}

func (r *paymentRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return conn(ctx, r.db).Where("sale_id = ?", saleID).Delete(&entity.Payment{}).Error
}
