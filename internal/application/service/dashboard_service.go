package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	clientRepo      repository.ClientRepository
	productRepo     repository.ProductRepository
	analyticsRepo   repository.AnalyticsRepository
	installmentRepo repository.InstallmentRepository
	calendar        Calendar
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	installmentRepo repository.InstallmentRepository,
	calendar Calendar,
) *DashboardService {
	return &DashboardService{
		clientRepo:      clientRepo,
		productRepo:     productRepo,
		analyticsRepo:   analyticsRepo,
		installmentRepo: installmentRepo,
		calendar:        calendar,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalClients         int64                            `json:"total_clients"`
	TotalProducts        int64                            `json:"total_products"`
	TotalSales           int64                            `json:"total_sales"`
	TotalRevenue         decimal.Decimal                  `json:"total_revenue"`
	MonthlyRevenue       decimal.Decimal                  `json:"monthly_revenue"`
	AverageTicket        decimal.Decimal                  `json:"average_ticket"`
	MonthlyReceived      decimal.Decimal                  `json:"monthly_received"`
	PendingInstallments  int64                            `json:"pending_installments"`
	OverdueInstallments  int64                            `json:"overdue_installments"`
	OutstandingValue     decimal.Decimal                  `json:"outstanding_value"`
	OverdueValue         decimal.Decimal                  `json:"overdue_value"`
	SalesByPaymentMethod []repository.PaymentMethodResult `json:"sales_by_payment_method"`
	TopProducts          []repository.TopProductResult    `json:"top_products"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalClients, err = s.clientRepo.Count(ctx); err != nil {
		return nil, apperror.NewPersistenceError("count clients", err)
	}
	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, apperror.NewPersistenceError("count products", err)
	}
	if stats.TotalSales, err = s.analyticsRepo.CountSales(ctx); err != nil {
		return nil, apperror.NewPersistenceError("count sales", err)
	}

	if stats.TotalRevenue, err = s.analyticsRepo.TotalRevenue(ctx, time.Time{}); err != nil {
		return nil, apperror.NewPersistenceError("sum revenue", err)
	}
	if stats.TotalSales > 0 {
		stats.AverageTicket = stats.TotalRevenue.DivRound(decimal.NewFromInt(stats.TotalSales), 2)
	}

	// Month boundaries in the business timezone
	today := s.calendar.Today()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.calendar.Location)
	if stats.MonthlyRevenue, err = s.analyticsRepo.TotalRevenue(ctx, firstOfMonth.UTC()); err != nil {
		return nil, apperror.NewPersistenceError("sum monthly revenue", err)
	}
	monthDate := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	if stats.MonthlyReceived, err = s.analyticsRepo.ReceivedAmount(ctx, monthDate); err != nil {
		return nil, apperror.NewPersistenceError("sum payments", err)
	}

	inst, err := s.installmentRepo.Stats(ctx, repository.InstallmentFilter{Today: today})
	if err != nil {
		return nil, apperror.NewPersistenceError("compute installment stats", err)
	}
	stats.PendingInstallments = inst.Pending
	stats.OverdueInstallments = inst.Overdue
	stats.OutstandingValue = inst.OutstandingValue
	stats.OverdueValue = inst.OverdueValue

	if stats.SalesByPaymentMethod, err = s.analyticsRepo.SalesByPaymentMethod(ctx); err != nil {
		return nil, apperror.NewPersistenceError("group sales", err)
	}
	if stats.TopProducts, err = s.analyticsRepo.TopProducts(ctx, 5); err != nil {
		return nil, apperror.NewPersistenceError("rank products", err)
	}
	if stats.SalesByPaymentMethod == nil {
		stats.SalesByPaymentMethod = []repository.PaymentMethodResult{}
	}
	if stats.TopProducts == nil {
		stats.TopProducts = []repository.TopProductResult{}
	}

	return stats, nil
}
