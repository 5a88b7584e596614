package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) domainRepo.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) CreateBatch(ctx context.Context, installments []entity.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&installments).Error
}

func (r *installmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Installment, error) {
	var inst entity.Installment
	err := conn(ctx, r.db).First(&inst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inst, err
}

// GetByIDForUpdate takes a row lock on PostgreSQL. SQLite has no row locks;
// there the single connection pool already serializes transactions.
func (r *installmentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Installment, error) {
	var inst entity.Installment
	query := conn(ctx, r.db)
	if !isSQLite(query) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&inst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inst, err
}

func (r *installmentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Installment, error) {
	var installments []entity.Installment
	err := conn(ctx, r.db).
		Where("sale_id = ?", saleID).
		Order("installment_number ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) List(ctx context.Context, filter domainRepo.InstallmentFilter, params *pagination.PaginationParams) ([]entity.Installment, int64, error) {
	var installments []entity.Installment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Installment{}).
		Scopes(filterScope(filter), statusScope(filter))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("due_date ASC, installment_number ASC").
		Find(&installments).Error

	return installments, total, err
}

func (r *installmentRepository) ListAll(ctx context.Context, filter domainRepo.InstallmentFilter) ([]entity.Installment, error) {
	var installments []entity.Installment
	err := conn(ctx, r.db).
		Scopes(filterScope(filter), statusScope(filter)).
		Order("due_date ASC, installment_number ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) error {
	paidOn = installment.Date(paidOn)
	res := conn(ctx, r.db).Model(&entity.Installment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       enum.InstallmentStatusPaid,
			"payment_date": paidOn,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *installmentRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return conn(ctx, r.db).Where("sale_id = ?", saleID).Delete(&entity.Installment{}).Error
}

type statusRow struct {
	Value   decimal.Decimal
	Status  enum.InstallmentStatus
	DueDate time.Time
}

// Stats loads the matching rows' value and state and resolves each one, so
// counts use exactly the same rule as every read path.
func (r *installmentRepository) Stats(ctx context.Context, filter domainRepo.InstallmentFilter) (*domainRepo.InstallmentStats, error) {
	var rows []statusRow
	err := conn(ctx, r.db).Model(&entity.Installment{}).
		Select("value, status, due_date").
		Scopes(filterScope(filter)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &domainRepo.InstallmentStats{
		OutstandingValue: decimal.Zero,
		OverdueValue:     decimal.Zero,
	}
	for _, row := range rows {
		stats.Total++
		switch installment.ResolveStatus(row.Status, row.DueDate, filter.Today) {
		case enum.InstallmentStatusPaid:
			stats.Paid++
		case enum.InstallmentStatusOverdue:
			stats.Overdue++
			stats.OverdueValue = stats.OverdueValue.Add(row.Value)
			stats.OutstandingValue = stats.OutstandingValue.Add(row.Value)
		default:
			stats.Pending++
			stats.OutstandingValue = stats.OutstandingValue.Add(row.Value)
		}
	}
	return stats, nil
}

// filterScope applies everything but the status filter
func filterScope(f domainRepo.InstallmentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(
			SearchScope(f.Search, "client_name"),
			DateRangeScope("due_date", f.DueFrom, f.DueTo),
		)
		if f.SaleID != nil {
			db = db.Where("sale_id = ?", *f.SaleID)
		}
		if f.ClientID != nil {
			db = db.Where("client_id = ?", *f.ClientID)
		}
		return db
	}
}

// statusScope translates a resolved status into stored state and due date.
// It mirrors installment.ResolveStatus.
func statusScope(f domainRepo.InstallmentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status == nil {
			return db
		}
		today := installment.Date(f.Today)
		switch *f.Status {
		case enum.InstallmentStatusPaid:
			return db.Where("status = ?", enum.InstallmentStatusPaid)
		case enum.InstallmentStatusOverdue:
			return db.Where("status <> ? AND due_date < ?", enum.InstallmentStatusPaid, today)
		default:
			return db.Where("status <> ? AND due_date >= ?", enum.InstallmentStatusPaid, today)
		}
	}
}
