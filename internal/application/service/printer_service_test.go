package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/printer"
)

func newPrinterService(env *testEnv, p printer.Printer) *PrinterService {
	return NewPrinterService(p, env.saleRepo, env.installmentRepo, PrinterSettings{
		Type:      printer.TypeBuffer,
		StoreName: "Park Móveis",
		Width:     32,
	}, env.calendar)
}

func TestPrintBooklet(t *testing.T) {
	env := newTestEnv(t)
	buf := printer.NewBufferPrinter()
	svc := newPrinterService(env, buf)
	sale := env.creditSale(t, "1000.00", 3)

	booklet, err := svc.PrintBooklet(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, booklet.Pages, 1)

	jobs := buf.Jobs()
	require.Len(t, jobs, 1)
	assert.Contains(t, string(jobs[0]), "Park Moveis")
	assert.Contains(t, string(jobs[0]), "3/3")
	assert.Contains(t, string(jobs[0]), "R$ 333,34")
	assert.Contains(t, string(jobs[0]), "Credito parcelado")
	assert.Equal(t, 2, bytes.Count(jobs[0], []byte{printer.GS, 'V', 0x01}))
	assert.True(t, bytes.HasSuffix(jobs[0], []byte{printer.GS, 'V', 0x00}))
	assert.Equal(t, 3, strings.Count(string(jobs[0]), "Recebido por"))
	assert.Contains(t, string(jobs[0]), strings.Repeat("_", 24))
	assert.NotContains(t, string(jobs[0]), strings.Repeat("_", 25))

	_, err = svc.PrintBooklet(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestPrintSaleReceipt(t *testing.T) {
	env := newTestEnv(t)
	buf := printer.NewBufferPrinter()
	svc := newPrinterService(env, buf)
	sale := env.creditSale(t, "1234.56", 2)

	receipt, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, receipt.Items, 1)
	assert.Len(t, receipt.Installments, 2)

	job := buf.Jobs()[0]
	assert.True(t, bytes.HasSuffix(job, []byte{printer.GS, 'V', 0x00}))
	assert.Zero(t, bytes.Count(job, []byte{printer.GS, 'V', 0x01}))

	out := string(job)
	assert.Contains(t, out, "R$ 1.234,56")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, receipt.SaleCode)
}

func TestPrinterStatus(t *testing.T) {
	env := newTestEnv(t)
	status := NewPrinterService(printer.NewNullPrinter(), env.saleRepo, env.installmentRepo, PrinterSettings{Type: printer.TypeNone}, env.calendar).GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)

	status = newPrinterService(env, printer.NewBufferPrinter()).GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
}
