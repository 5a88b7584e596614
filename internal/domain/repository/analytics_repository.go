package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// PaymentMethodResult aggregates sales by payment method
type PaymentMethodResult struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	SaleCount     int64              `json:"sale_count"`
	Revenue       decimal.Decimal    `json:"revenue"`
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// AnalyticsRepository defines interface for aggregation queries
type AnalyticsRepository interface {
	CountSales(ctx context.Context) (int64, error)
	// TotalRevenue sums sale totals created at or after since (zero time for all).
	TotalRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error)
	// ReceivedAmount sums ledger payments dated at or after since.
	ReceivedAmount(ctx context.Context, since time.Time) (decimal.Decimal, error)
	SalesByPaymentMethod(ctx context.Context) ([]PaymentMethodResult, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
}
