package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountSales(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Sale{}).Count(&total).Error
	return total, err
}

func (r *analyticsRepository) TotalRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := conn(ctx, r.db).Model(&entity.Sale{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	return sumColumn(query, "total_amount")
}

func (r *analyticsRepository) ReceivedAmount(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := conn(ctx, r.db).Model(&entity.Payment{})
	if !since.IsZero() {
		query = query.Where("payment_date >= ?", since)
	}
	return sumColumn(query, "amount")
}

func (r *analyticsRepository) SalesByPaymentMethod(ctx context.Context) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult
	err := conn(ctx, r.db).Model(&entity.Sale{}).
		Select("payment_method, COUNT(*) AS sale_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("payment_method").
		Order("revenue DESC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := conn(ctx, r.db).Model(&entity.SaleItem{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(quantity) AS quantity_sold, COALESCE(SUM(total), 0) AS revenue").
		Group("product_id").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func sumColumn(query *gorm.DB, column string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := query.Select("SUM(" + column + ")").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}
