package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/database"
	infraRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

type testEnv struct {
	db              *gorm.DB
	now             time.Time
	calendar        Calendar
	tx              repository.Transactor
	clientRepo      repository.ClientRepository
	productRepo     repository.ProductRepository
	saleRepo        repository.SaleRepository
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.PaymentRepository
	sales           *SaleService
	installments    *InstallmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Nop()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:              db,
		now:             time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		tx:              infraRepo.NewTransactor(db),
		clientRepo:      infraRepo.NewClientRepository(db),
		productRepo:     infraRepo.NewProductRepository(db),
		saleRepo:        infraRepo.NewSaleRepository(db),
		installmentRepo: infraRepo.NewInstallmentRepository(db),
		paymentRepo:     infraRepo.NewPaymentRepository(db),
	}
	env.calendar = Calendar{Now: func() time.Time { return env.now }, Location: time.UTC}
	env.build()
	return env
}

// build wires the services; call again after swapping a repository.
func (e *testEnv) build() {
	e.sales = NewSaleService(SaleServiceDeps{
		Transactor:      e.tx,
		SaleRepo:        e.saleRepo,
		InstallmentRepo: e.installmentRepo,
		PaymentRepo:     e.paymentRepo,
		ClientRepo:      e.clientRepo,
		ProductRepo:     e.productRepo,
	}, installment.DefaultPolicy(), 4, e.calendar)
	e.installments = NewInstallmentService(e.tx, e.installmentRepo, e.paymentRepo, e.saleRepo, installment.DefaultPolicy(), e.calendar)
}

func (e *testEnv) today() time.Time {
	return installment.Date(e.now)
}

func (e *testEnv) client(t *testing.T, name string) *entity.Client {
	t.Helper()
	c := &entity.Client{Name: name}
	require.NoError(t, e.clientRepo.Create(context.Background(), c))
	return c
}

func (e *testEnv) product(t *testing.T, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, SalePrice: decimal.RequireFromString(price)}
	require.NoError(t, e.productRepo.Create(context.Background(), p))
	return p
}

// creditSale sells one unit priced at total on count installments.
func (e *testEnv) creditSale(t *testing.T, total string, count int) *entity.Sale {
	t.Helper()
	c := e.client(t, "Maria Souza")
	p := e.product(t, "Sofa 3 lugares", total)

	sale, err := e.sales.CreateSale(context.Background(), &CreateSaleInput{
		ClientID:         c.ID,
		Items:            []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod:    enum.PaymentMethodCreditInstallment,
		InstallmentCount: count,
	})
	require.NoError(t, err)
	return sale
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

var paginationFirstPage = pagination.PaginationParams{Page: 1, PerPage: 15}
