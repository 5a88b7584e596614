package service

import (
	"context"
	"fmt"

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
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/utils"
)

// SaleService creates sales and the installment plans that finance them
type SaleService struct {
	tx              repository.Transactor
	saleRepo        repository.SaleRepository
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.PaymentRepository
	clientRepo      repository.ClientRepository
	productRepo     repository.ProductRepository
	policy          installment.Policy
	bookletPageSize int
	calendar        Calendar
	log             zerolog.Logger
}

// SaleServiceDeps groups the collaborators of SaleService
type SaleServiceDeps struct {
	Transactor      repository.Transactor
	SaleRepo        repository.SaleRepository
	InstallmentRepo repository.InstallmentRepository
	PaymentRepo     repository.PaymentRepository
	ClientRepo      repository.ClientRepository
	ProductRepo     repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(deps SaleServiceDeps, policy installment.Policy, bookletPageSize int, calendar Calendar) *SaleService {
	if bookletPageSize < 1 {
		bookletPageSize = 4
	}
	return &SaleService{
		tx:              deps.Transactor,
		saleRepo:        deps.SaleRepo,
		installmentRepo: deps.InstallmentRepo,
		paymentRepo:     deps.PaymentRepo,
		clientRepo:      deps.ClientRepo,
		productRepo:     deps.ProductRepo,
		policy:          policy,
		bookletPageSize: bookletPageSize,
		calendar:        calendar,
		log:             logger.WithComponent("sale_service"),
	}
}

// SaleItemInput is one requested line. A nil UnitPrice uses the product's sale price.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents a checkout
type CreateSaleInput struct {
	ClientID      uuid.UUID
	Items         []SaleItemInput
	Discount      decimal.Decimal
	Addition      decimal.Decimal
	PaymentMethod enum.PaymentMethod
	// InstallmentCount is used when Installments is empty. Zero means the policy minimum.
	InstallmentCount int
	// Installments is a plan edited in the preview. When present it is
	// validated against the total instead of generating a new one.
	Installments []installment.Draft
	Notes        *string
}

// CreateSale records the sale, its items and, for credit-installment sales,
// the installment plan. Either everything is stored or nothing is.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateSaleInput(input); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, apperror.NewPersistenceError("load client", err)
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	items, subtotal, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	discount := input.Discount.Round(2)
	addition := input.Addition.Round(2)
	total := subtotal.Sub(discount).Add(addition)
	if total.IsNegative() {
		return nil, apperror.NewFieldValidationError("discount", "Discount cannot exceed subtotal plus addition")
	}

	sale := &entity.Sale{
		ClientID:      client.ID,
		ClientName:    client.Name,
		Subtotal:      subtotal,
		Discount:      discount,
		Addition:      addition,
		TotalAmount:   total,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.SaleStatusCompleted,
		Notes:         input.Notes,
		Items:         items,
	}

	var plan []installment.Draft
	if input.PaymentMethod.IsInstallment() {
		plan, err = s.plan(total, input)
		if err != nil {
			return nil, err
		}
		sale.Status = enum.SaleStatusPending
		sale.InstallmentCount = len(plan)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if len(plan) == 0 {
			return nil
		}
		rows := entity.NewInstallmentsFromPlan(sale, plan)
		if err := s.installmentRepo.CreateBatch(ctx, rows); err != nil {
			return fmt.Errorf("create installments: %w", err)
		}
		sale.Installments = rows
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", client.ID.String()).Msg("sale rolled back")
		return nil, storeError("save sale", err)
	}

	today := s.calendar.Today()
	for i := range sale.Installments {
		sale.Installments[i].Resolve(today)
	}

	s.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("payment_method", sale.PaymentMethod.String()).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Int("installments", len(plan)).
		Msg("sale created")

	return sale, nil
}

func validateSaleInput(input *CreateSaleInput) error {
	var errs []apperror.FieldError
	if input.ClientID == uuid.Nil {
		errs = append(errs, apperror.NewFieldError("client_id", "Client is required"))
	}
	if len(input.Items) == 0 {
		errs = append(errs, apperror.NewFieldError("items", "At least one item is required"))
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			errs = append(errs, apperror.NewFieldError(fmt.Sprintf("items[%d].product_id", i), "Product is required"))
		}
		if item.Quantity < 1 {
			errs = append(errs, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1"))
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			errs = append(errs, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_price", i), "Unit price cannot be negative"))
		}
	}
	if input.Discount.IsNegative() {
		errs = append(errs, apperror.NewFieldError("discount", "Discount cannot be negative"))
	}
	if input.Addition.IsNegative() {
		errs = append(errs, apperror.NewFieldError("addition", "Addition cannot be negative"))
	}
	if !input.PaymentMethod.IsValid() {
		errs = append(errs, apperror.NewFieldError("payment_method", "Unknown payment method"))
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func (s *SaleService) buildItems(ctx context.Context, inputs []SaleItemInput) ([]entity.SaleItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, apperror.NewPersistenceError("load products", err)
	}

	subtotal := decimal.Zero
	items := make([]entity.SaleItem, len(inputs))
	for i, in := range inputs {
		product, ok := products[in.ProductID]
		if !ok {
			return nil, decimal.Zero, apperror.NewNotFoundError("Product " + in.ProductID.String())
		}
		price := product.SalePrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		price = price.Round(2)
		lineTotal := price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)

		items[i] = entity.SaleItem{
			Position:    i + 1,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   price,
			Total:       lineTotal,
		}
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal, nil
}

func (s *SaleService) plan(total decimal.Decimal, input *CreateSaleInput) ([]installment.Draft, error) {
	if len(input.Installments) > 0 {
		drafts := make([]installment.Draft, len(input.Installments))
		for i, d := range input.Installments {
			drafts[i] = installment.Draft{
				Number:  d.Number,
				Value:   d.Value,
				DueDate: installment.Date(d.DueDate),
				Status:  enum.InstallmentStatusPending,
			}
		}
		if err := installment.Validate(drafts, total, s.policy); err != nil {
			return nil, engineError(err)
		}
		return drafts, nil
	}

	count := input.InstallmentCount
	if count == 0 {
		count = s.policy.MinCount
	}
	drafts, err := installment.Generate(total, count, s.calendar.Today(), s.policy)
	if err != nil {
		return nil, engineError(err)
	}
	return drafts, nil
}

// GetSale retrieves a sale with its items and installments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	installments, err := s.SaleInstallments(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Installments = installments
	return sale, nil
}

// ListSales lists sales, newest first
func (s *SaleService) ListSales(ctx context.Context, filter repository.SaleFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, filter, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("list sales", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// SaleInstallments returns the plan of a sale with resolved statuses
func (s *SaleService) SaleInstallments(ctx context.Context, saleID uuid.UUID) ([]entity.Installment, error) {
	installments, err := s.installmentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, apperror.NewPersistenceError("list installments", err)
	}
	today := s.calendar.Today()
	for i := range installments {
		installments[i].Resolve(today)
	}
	return installments, nil
}

// DeleteSale removes a sale with its payments, installments and items in one transaction.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if err := s.paymentRepo.DeleteBySale(ctx, id); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if err := s.installmentRepo.DeleteBySale(ctx, id); err != nil {
			return fmt.Errorf("delete installments: %w", err)
		}
		return s.saleRepo.Delete(ctx, id)
	})
	if err != nil {
		return storeError("delete sale", err)
	}

	s.log.Info().Str("sale_id", id.String()).Msg("sale deleted")
	return nil
}

// Booklet lays the plan of a sale out as printable coupon pages
func (s *SaleService) Booklet(ctx context.Context, saleID uuid.UUID) (*entity.Booklet, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	installments, err := s.SaleInstallments(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, apperror.NewBadRequestError("Sale has no installments")
	}

	return BuildBooklet(sale, installments, s.bookletPageSize), nil
}

// BuildBooklet groups installments, already in number order, into pages of pageSize coupons.
func BuildBooklet(sale *entity.Sale, installments []entity.Installment, pageSize int) *entity.Booklet {
	code := utils.ShortCode(sale.ID)
	coupons := make([]entity.BookletCoupon, len(installments))
	for i, inst := range installments {
		coupons[i] = entity.BookletCoupon{
			InstallmentID:     inst.ID,
			InstallmentNumber: inst.InstallmentNumber,
			TotalInstallments: inst.TotalInstallments,
			Label:             fmt.Sprintf("%d/%d", inst.InstallmentNumber, inst.TotalInstallments),
			ClientName:        inst.ClientName,
			DueDate:           inst.DueDate,
			Value:             inst.Value,
			PaymentMethod:     sale.PaymentMethod.Label(),
			SaleCode:          code,
			Status:            inst.Status,
		}
	}

	chunks := pagination.Chunk(coupons, pageSize)
	pages := make([]entity.BookletPage, len(chunks))
	for i, c := range chunks {
		pages[i] = entity.BookletPage{Number: i + 1, Coupons: c}
	}

	return &entity.Booklet{
		SaleID:     sale.ID,
		SaleCode:   code,
		ClientName: sale.ClientName,
		Total:      sale.TotalAmount,
		Pages:      pages,
	}
}
