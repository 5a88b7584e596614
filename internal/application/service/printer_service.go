package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/printer"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/utils"
)

// PrinterService handles receipt and booklet formatting and thermal printing.
type PrinterService struct {
	printer         printer.Printer
	saleRepo        repository.SaleRepository
	installmentRepo repository.InstallmentRepository
	cfg             PrinterSettings
	calendar        Calendar
	log             zerolog.Logger
}

// PrinterSettings is the printer part of the configuration.
type PrinterSettings struct {
	Type            string
	StoreName       string
	Width           int
	BookletPageSize int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	installmentRepo repository.InstallmentRepository,
	cfg PrinterSettings,
	calendar Calendar,
) *PrinterService {
	if cfg.Width <= 0 {
		cfg.Width = 32
	}
	if cfg.BookletPageSize <= 0 {
		cfg.BookletPageSize = 4
	}
	return &PrinterService{
		printer:         p,
		saleRepo:        saleRepo,
		installmentRepo: installmentRepo,
		cfg:             cfg,
		calendar:        calendar,
		log:             logger.WithComponent("printer_service"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.cfg.Type != printer.TypeNone && s.cfg.Type != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.cfg.Type,
	}
}

// PrintSaleReceipt prints the receipt of a sale, including its plan when financed.
// The receipt is returned even when printing fails so the caller can show it.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, installments, err := s.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: s.cfg.StoreName},
		SaleCode:      utils.ShortCode(sale.ID),
		Date:          sale.CreatedAt.In(s.calendar.Location).Format("02/01/2006 15:04"),
		Client:        sale.ClientName,
		PaymentMethod: sale.PaymentMethod.Label(),
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Addition:      sale.Addition,
		Total:         sale.TotalAmount,
	}
	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	for _, inst := range installments {
		receipt.Installments = append(receipt.Installments, entity.ReceiptInstallment{
			Label:   fmt.Sprintf("%d/%d", inst.InstallmentNumber, inst.TotalInstallments),
			DueDate: inst.DueDate.Format("02/01/2006"),
			Value:   inst.Value,
		})
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.cfg.Width)); err != nil {
		s.log.Error().Err(err).Str("sale_id", saleID.String()).Msg("receipt print failed")
		return receipt, apperror.NewAppError(http.StatusBadGateway, "Failed to print receipt: "+err.Error())
	}

	return receipt, nil
}

// PrintBooklet prints one coupon per installment of a sale.
func (s *PrinterService) PrintBooklet(ctx context.Context, saleID uuid.UUID) (*entity.Booklet, error) {
	sale, installments, err := s.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, apperror.NewBadRequestError("Sale has no installments")
	}

	booklet := BuildBooklet(sale, installments, s.cfg.BookletPageSize)
	if err := s.printer.Print(FormatBooklet(booklet, s.cfg.StoreName, s.cfg.Width)); err != nil {
		s.log.Error().Err(err).Str("sale_id", saleID.String()).Msg("booklet print failed")
		return booklet, apperror.NewAppError(http.StatusBadGateway, "Failed to print booklet: "+err.Error())
	}

	return booklet, nil
}

func (s *PrinterService) loadSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, []entity.Installment, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, nil, apperror.NewPersistenceError("load sale", err)
	}
	if sale == nil {
		return nil, nil, apperror.NewNotFoundError("Sale")
	}

	installments, err := s.installmentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, nil, apperror.NewPersistenceError("list installments", err)
	}
	today := s.calendar.Today()
	for i := range installments {
		installments[i].Resolve(today)
	}
	return sale, installments, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Venda:", r.SaleCode).
		KeyValue("Data:", r.Date)
	if r.Client != "" {
		doc.KeyValue("Cliente:", r.Client)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Pagamento:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, utils.FormatBRL(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  %s cada", utils.FormatBRL(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", utils.FormatBRL(r.Subtotal))
	if r.Discount.GreaterThan(decimal.Zero) {
		doc.KeyValue("Desconto:", "-"+utils.FormatBRL(r.Discount))
	}
	if r.Addition.GreaterThan(decimal.Zero) {
		doc.KeyValue("Acrescimo:", utils.FormatBRL(r.Addition))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", utils.FormatBRL(r.Total)).
		SetBold(false)

	if len(r.Installments) > 0 {
		doc.Separator('-').
			Text("Parcelas")
		for _, inst := range r.Installments {
			doc.KeyValue(inst.Label+"  "+inst.DueDate, utils.FormatBRL(inst.Value))
		}
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Obrigado pela preferencia!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

// FormatBooklet renders every coupon of a booklet. Coupons are separated by
// partial cuts so the booklet stays in one strip until the last one.
func FormatBooklet(b *entity.Booklet, storeName string, width int) []byte {
	doc := printer.NewDocument(width)
	signature := strings.Repeat("_", doc.Width()*3/4)

	remaining := 0
	for _, page := range b.Pages {
		remaining += len(page.Coupons)
	}

	for _, page := range b.Pages {
		for _, c := range page.Coupons {
			remaining--
			doc.SetAlign(printer.AlignCenter).
				SetBold(true).
				Text(storeName).
				SetBold(false).
				Text("Carne de pagamento").
				SetAlign(printer.AlignLeft).
				Separator('-')

			doc.KeyValue("Parcela:", c.Label).
				KeyValue("Cliente:", c.ClientName).
				KeyValue("Vencimento:", c.DueDate.Format("02/01/2006")).
				SetBold(true).
				KeyValue("Valor:", utils.FormatBRL(c.Value)).
				SetBold(false).
				KeyValue("Forma:", c.PaymentMethod).
				KeyValue("Venda:", c.SaleCode)

			doc.Separator('-').
				SetAlign(printer.AlignCenter).
				Barcode(fmt.Sprintf("%s-%02d", c.SaleCode, c.InstallmentNumber)).
				LineFeed().
				Text(signature).
				Text("Recebido por").
				SetAlign(printer.AlignLeft).
				FeedLines(3)

			if remaining > 0 {
				doc.PartialCut()
			} else {
				doc.Cut()
			}
		}
	}

	return doc.Bytes()
}
