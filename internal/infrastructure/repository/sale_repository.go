package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create inserts the sale and its items. Installments are written separately
// by the caller inside the same unit of work.
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Omit("Installments").Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, filter domainRepo.SaleFilter, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{}).
		Scopes(
			SearchScope(filter.Search, "client_name"),
			DateRangeScope("created_at", filter.From, filter.To),
		)
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return conn(ctx, r.db).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Sale{}, "id = ?", id).Error
}
