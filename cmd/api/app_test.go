package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/database"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/printer"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	gin.SetMode(gin.TestMode)
	logger.Nop()
	os.Exit(m.Run())
}

type apiEnv struct {
	router  *gin.Engine
	printer *printer.BufferPrinter
	now     time.Time
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type installmentView struct {
	ID                string          `json:"id"`
	InstallmentNumber int             `json:"installment_number"`
	Value             decimal.Decimal `json:"value"`
	Status            string          `json:"status"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	Remaining         decimal.Decimal `json:"remaining"`
}

type saleView struct {
	ID           string            `json:"id"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Status       string            `json:"status"`
	Installments []installmentView `json:"installments"`
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "parkmoveis-api", Env: "test", Timezone: "UTC"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Installment: config.InstallmentConfig{
			FirstDueOffsetDays: 30,
			IntervalDays:       30,
			MinCount:           2,
			MaxCount:           12,
			BookletPageSize:    4,
		},
		Printer:     config.PrinterConfig{Type: printer.TypeBuffer, StoreName: "Park Moveis", Width: 32},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
}

func newAPIEnv(t *testing.T, cfg *config.Config) *apiEnv {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "api.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	env := &apiEnv{
		printer: printer.NewBufferPrinter(),
		now:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	calendar := service.Calendar{Now: func() time.Time { return env.now }, Location: time.UTC}

	a, err := newApp(cfg, db, func(o *appOptions) {
		o.calendar = &calendar
		o.printer = env.printer
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	env.router = a.Router
	return env
}

func (e *apiEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

// checkout creates a client, a product and a financed sale through the API.
func (e *apiEnv) checkout(t *testing.T, price string, count int) saleView {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/clients", gin.H{"name": "Maria Souza"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client struct{ ID string }
	decode(t, rec, &client)

	rec = e.do(t, http.MethodPost, "/api/v1/products", gin.H{
		"name":       "Sofa 3 lugares",
		"cost_price": 600,
		"sale_price": json.Number(price),
		"stock":      5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product struct{ ID string }
	decode(t, rec, &product)

	rec = e.do(t, http.MethodPost, "/api/v1/sales", gin.H{
		"client_id":         client.ID,
		"items":             []gin.H{{"product_id": product.ID, "quantity": 1}},
		"payment_method":    "credit_installment",
		"installment_count": count,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale saleView
	decode(t, rec, &sale)
	return sale
}

func TestHealth(t *testing.T) {
	env := newAPIEnv(t, testConfig())

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "parkmoveis-api")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCheckoutCreatesPlan(t *testing.T) {
	env := newAPIEnv(t, testConfig())

	sale := env.checkout(t, "1000", 3)

	assert.Equal(t, "pending", sale.Status)
	assert.Equal(t, "1000", sale.TotalAmount.String())
	require.Len(t, sale.Installments, 3)
	assert.Equal(t, "333.33", sale.Installments[0].Value.String())
	assert.Equal(t, "333.33", sale.Installments[1].Value.String())
	assert.Equal(t, "333.34", sale.Installments[2].Value.String())
	for _, inst := range sale.Installments {
		assert.Equal(t, "pending", inst.Status)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID+"/installments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var installments []installmentView
	decode(t, rec, &installments)
	assert.Len(t, installments, 3)
}

func TestCheckoutRejectsMalformedRequest(t *testing.T) {
	env := newAPIEnv(t, testConfig())

	rec := env.do(t, http.MethodPost, "/api/v1/sales", gin.H{
		"client_id":      "not-a-uuid",
		"items":          []gin.H{},
		"payment_method": "credit_installment",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/sales/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentFlow(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	sale := env.checkout(t, "1000", 3)
	first := sale.Installments[0]
	paymentsPath := "/api/v1/installments/" + first.ID + "/payments"

	rec := env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 100})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/installments/"+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details installmentView
	decode(t, rec, &details)
	assert.Equal(t, "100", details.TotalPaid.String())
	assert.Equal(t, "233.33", details.Remaining.String())
	assert.Equal(t, "pending", details.Status)

	rec = env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 300})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/installments/"+first.ID, nil)
	decode(t, rec, &details)
	assert.Equal(t, "paid", details.Status)
	assert.Equal(t, "400", details.TotalPaid.String())
	assert.True(t, details.Remaining.IsZero())

	rec = env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = env.do(t, http.MethodPost, paymentsPath, gin.H{"pay_full": true})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	second := sale.Installments[1]
	rec = env.do(t, http.MethodPost, "/api/v1/installments/"+second.ID+"/payments", gin.H{"pay_full": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/installments/"+second.ID, nil)
	decode(t, rec, &details)
	assert.Equal(t, "paid", details.Status)
	assert.Equal(t, "333.33", details.TotalPaid.String())
}

func TestPaymentIdempotencyKey(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	sale := env.checkout(t, "1000", 3)
	paymentsPath := "/api/v1/installments/" + sale.Installments[0].ID + "/payments"

	first := env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 50}, "Idempotency-Key", "pay-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	replay := env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 50}, "Idempotency-Key", "pay-1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())

	rec := env.do(t, http.MethodGet, paymentsPath, nil)
	var payments []struct{ Amount decimal.Decimal }
	decode(t, rec, &payments)
	assert.Len(t, payments, 1)

	conflict := env.do(t, http.MethodPost, paymentsPath, gin.H{"amount": 60}, "Idempotency-Key", "pay-1")
	assert.Equal(t, http.StatusConflict, conflict.Code)
}

func TestInstallmentListResolvesOverdue(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	env.checkout(t, "1000", 3)

	rec := env.do(t, http.MethodGet, "/api/v1/installments?status=overdue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []installmentView `json:"items"`
		Pagination struct{ Total int64 }
	}
	decode(t, rec, &page)
	assert.Empty(t, page.Items)

	// first due date is 2025-04-09
	env.now = time.Date(2025, 4, 19, 9, 0, 0, 0, time.UTC)

	rec = env.do(t, http.MethodGet, "/api/v1/installments?status=overdue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].InstallmentNumber)
	assert.Equal(t, "overdue", page.Items[0].Status)
	assert.Equal(t, int64(1), page.Pagination.Total)

	rec = env.do(t, http.MethodGet, "/api/v1/installments/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Pending      int64           `json:"pending"`
		Overdue      int64           `json:"overdue"`
		OverdueValue decimal.Decimal `json:"overdue_value"`
	}
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Overdue)
	assert.Equal(t, "333.33", stats.OverdueValue.String())

	rec = env.do(t, http.MethodGet, "/api/v1/installments?status=late", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/installments?due_from=09/04/2025", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInstallmentExport(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	env.checkout(t, "1000", 3)

	rec := env.do(t, http.MethodGet, "/api/v1/installments/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "parcelas.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestPreviewPlan(t *testing.T) {
	env := newAPIEnv(t, testConfig())

	rec := env.do(t, http.MethodPost, "/api/v1/installments/preview", gin.H{"total": 100, "count": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		Installments []installmentView `json:"installments"`
	}
	decode(t, rec, &preview)
	require.Len(t, preview.Installments, 3)
	assert.Equal(t, "33.34", preview.Installments[2].Value.String())

	rec = env.do(t, http.MethodPost, "/api/v1/installments/preview", gin.H{"total": 100, "count": 40})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPrintBookletAndReceipt(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	sale := env.checkout(t, "1000", 3)

	rec := env.do(t, http.MethodPost, "/api/v1/printer/booklet/"+sale.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/printer/receipt/"+sale.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Len(t, env.printer.Jobs(), 2)

	rec = env.do(t, http.MethodGet, "/api/v1/printer/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":true`)
}

func TestDeleteSaleCascades(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	sale := env.checkout(t, "1000", 3)

	rec := env.do(t, http.MethodPost, "/api/v1/installments/"+sale.Installments[0].ID+"/payments", gin.H{"amount": 10})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/sales/"+sale.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/installments/"+sale.Installments[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	env := newAPIEnv(t, testConfig())
	env.checkout(t, "1000", 3)

	rec := env.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		TotalSales          int64           `json:"total_sales"`
		PendingInstallments int64           `json:"pending_installments"`
		OutstandingValue    decimal.Decimal `json:"outstanding_value"`
	}
	decode(t, rec, &stats)
	assert.Equal(t, int64(1), stats.TotalSales)
	assert.Equal(t, int64(3), stats.PendingInstallments)
	assert.Equal(t, "1000", stats.OutstandingValue.String())
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Requests: 2, Duration: 60}
	env := newAPIEnv(t, cfg)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodGet, "/api/v1/clients", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := env.do(t, http.MethodGet, "/api/v1/clients", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// health sits outside the API group
	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
