package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/repository"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sale := env.creditSale(t, "300.00", 3)
	env.creditSale(t, "100.00", 2)

	_, err := env.installments.RegisterPayment(ctx, &RegisterPaymentInput{InstallmentID: sale.Installments[0].ID, Amount: dec("60")})
	require.NoError(t, err)

	svc := NewDashboardService(env.clientRepo, env.productRepo, infraRepo.NewAnalyticsRepository(env.db), env.installmentRepo, env.calendar)
	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalClients)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalSales)
	assert.Equal(t, "400.00", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, "200.00", stats.AverageTicket.StringFixed(2))
	assert.Equal(t, "60.00", stats.MonthlyReceived.StringFixed(2))
	assert.Equal(t, int64(5), stats.PendingInstallments)
	assert.Equal(t, "400.00", stats.OutstandingValue.StringFixed(2))
	require.Len(t, stats.SalesByPaymentMethod, 1)
	assert.Equal(t, int64(2), stats.SalesByPaymentMethod[0].SaleCount)
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "300.00", stats.TopProducts[0].Revenue.StringFixed(2))
}
