package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// InstallmentService reads installment plans and reconciles payments against them
type InstallmentService struct {
	tx              repository.Transactor
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.PaymentRepository
	saleRepo        repository.SaleRepository
	policy          installment.Policy
	calendar        Calendar
	log             zerolog.Logger
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(
	tx repository.Transactor,
	installmentRepo repository.InstallmentRepository,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	policy installment.Policy,
	calendar Calendar,
) *InstallmentService {
	return &InstallmentService{
		tx:              tx,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		saleRepo:        saleRepo,
		policy:          policy,
		calendar:        calendar,
		log:             logger.WithComponent("installment_service"),
	}
}

// InstallmentDetails is an installment with its payment history and balance
type InstallmentDetails struct {
	entity.Installment
	Payments  []entity.Payment `json:"payments"`
	TotalPaid decimal.Decimal  `json:"total_paid"`
	Remaining decimal.Decimal  `json:"remaining"`
}

// ListInstallments lists installments ordered by due date. A status filter
// applies to the resolved status.
func (s *InstallmentService) ListInstallments(ctx context.Context, filter repository.InstallmentFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Installment], error) {
	today := s.calendar.Today()
	filter.Today = today

	installments, total, err := s.installmentRepo.List(ctx, filter, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("list installments", err)
	}
	for i := range installments {
		installments[i].Resolve(today)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(installments, pag), nil
}

// GetInstallmentDetails returns an installment with payments, paid-to-date and remaining balance
func (s *InstallmentService) GetInstallmentDetails(ctx context.Context, id uuid.UUID) (*InstallmentDetails, error) {
	inst, err := s.getInstallment(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByInstallment(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("list payments", err)
	}
	if payments == nil {
		payments = []entity.Payment{}
	}
	bal := installment.Summarize(inst.Value, paymentAmounts(payments))

	return &InstallmentDetails{
		Installment: *inst,
		Payments:    payments,
		TotalPaid:   bal.Paid,
		Remaining:   bal.Remaining,
	}, nil
}

// ListPayments returns the ledger of one installment, oldest first
func (s *InstallmentService) ListPayments(ctx context.Context, id uuid.UUID) ([]entity.Payment, error) {
	if _, err := s.getInstallment(ctx, id); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByInstallment(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("list payments", err)
	}
	if payments == nil {
		payments = []entity.Payment{}
	}
	return payments, nil
}

// RegisterPaymentInput represents a payment taken at the counter
type RegisterPaymentInput struct {
	InstallmentID uuid.UUID
	Amount        decimal.Decimal
	// PaymentDate defaults to today in the business timezone.
	PaymentDate *time.Time
	Notes       *string
	// PayFull records the remaining balance and ignores Amount.
	PayFull bool
}

// RegisterPayment appends a payment to the ledger and marks the installment
// paid when the payments reach its value. The installment row stays locked
// until the payment and the status change are committed.
func (s *InstallmentService) RegisterPayment(ctx context.Context, input *RegisterPaymentInput) (*entity.Payment, error) {
	if !input.PayFull && !input.Amount.IsPositive() {
		return nil, apperror.NewFieldValidationError("amount", installment.ErrNonPositiveAmount.Error())
	}

	paidOn := s.calendar.Today()
	if input.PaymentDate != nil && !input.PaymentDate.IsZero() {
		paidOn = installment.Date(*input.PaymentDate)
	}

	var payment *entity.Payment
	var settled bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		inst, err := s.installmentRepo.GetByIDForUpdate(ctx, input.InstallmentID)
		if err != nil {
			return fmt.Errorf("lock installment: %w", err)
		}
		if inst == nil {
			return apperror.NewNotFoundError("Installment")
		}

		previous, err := s.paymentRepo.ListByInstallment(ctx, inst.ID)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}
		bal := installment.Summarize(inst.Value, paymentAmounts(previous))

		st, err := installment.ApplyPayment(inst.StoredStatus, bal, input.Amount, input.PayFull)
		if err != nil {
			return engineError(err)
		}

		payment = &entity.Payment{
			InstallmentID: inst.ID,
			SaleID:        inst.SaleID,
			ClientName:    inst.ClientName,
			Amount:        st.Amount,
			PaymentDate:   paidOn,
			Notes:         input.Notes,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		if !st.Settles {
			return nil
		}
		settled = true
		if err := s.installmentRepo.MarkPaid(ctx, inst.ID, paidOn); err != nil {
			return fmt.Errorf("mark installment paid: %w", err)
		}
		return s.completeSaleIfSettled(ctx, inst.SaleID)
	})
	if err != nil {
		return nil, storeError("register payment", err)
	}

	s.log.Info().
		Str("installment_id", input.InstallmentID.String()).
		Str("amount", payment.Amount.StringFixed(2)).
		Bool("settled", settled).
		Msg("payment registered")

	return payment, nil
}

// completeSaleIfSettled flips the sale to completed once every installment is paid.
func (s *InstallmentService) completeSaleIfSettled(ctx context.Context, saleID uuid.UUID) error {
	siblings, err := s.installmentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return fmt.Errorf("list sale installments: %w", err)
	}
	for _, sib := range siblings {
		if !sib.IsPaid() {
			return nil
		}
	}
	if err := s.saleRepo.UpdateStatus(ctx, saleID, enum.SaleStatusCompleted); err != nil {
		return fmt.Errorf("complete sale: %w", err)
	}
	return nil
}

// PreviewPlanInput describes a plan being edited before checkout
type PreviewPlanInput struct {
	Total decimal.Decimal
	Count int
	// Previous is the plan currently shown; its due dates survive a count change.
	Previous []installment.Draft
}

// PlanPreview is a proposed plan and its sum
type PlanPreview struct {
	Installments []installment.Draft `json:"installments"`
	Total        decimal.Decimal     `json:"total"`
	Sum          decimal.Decimal     `json:"sum"`
}

// PreviewPlan generates a plan without storing anything
func (s *InstallmentService) PreviewPlan(ctx context.Context, input *PreviewPlanInput) (*PlanPreview, error) {
	count := input.Count
	if count == 0 {
		count = s.policy.MinCount
	}

	drafts, err := installment.Resize(input.Previous, count, input.Total, s.calendar.Today(), s.policy)
	if err != nil {
		return nil, engineError(err)
	}

	return &PlanPreview{
		Installments: drafts,
		Total:        input.Total,
		Sum:          installment.Sum(drafts),
	}, nil
}

// Stats counts installments by resolved status
func (s *InstallmentService) Stats(ctx context.Context, filter repository.InstallmentFilter) (*repository.InstallmentStats, error) {
	filter.Status = nil
	filter.Today = s.calendar.Today()
	stats, err := s.installmentRepo.Stats(ctx, filter)
	if err != nil {
		return nil, apperror.NewPersistenceError("compute installment stats", err)
	}
	return stats, nil
}

func (s *InstallmentService) getInstallment(ctx context.Context, id uuid.UUID) (*entity.Installment, error) {
	inst, err := s.installmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load installment", err)
	}
	if inst == nil {
		return nil, apperror.NewNotFoundError("Installment")
	}
	inst.Resolve(s.calendar.Today())
	return inst, nil
}

func paymentAmounts(payments []entity.Payment) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(payments))
	for i, p := range payments {
		amounts[i] = p.Amount
	}
	return amounts
}
