package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// BookletCoupon is one tear-off slip of a payment booklet.
type BookletCoupon struct {
	InstallmentID     uuid.UUID              `json:"installment_id"`
	InstallmentNumber int                    `json:"installment_number"`
	TotalInstallments int                    `json:"total_installments"`
	Label             string                 `json:"label"` // "2/6"
	ClientName        string                 `json:"client_name"`
	DueDate           time.Time              `json:"due_date"`
	Value             decimal.Decimal        `json:"value"`
	PaymentMethod     string                 `json:"payment_method"`
	SaleCode          string                 `json:"sale_code"`
	Status            enum.InstallmentStatus `json:"status"`
}

// BookletPage groups the coupons printed on one sheet.
type BookletPage struct {
	Number  int             `json:"number"`
	Coupons []BookletCoupon `json:"coupons"`
}

// Booklet is the printable payment booklet of a sale.
type Booklet struct {
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleCode   string          `json:"sale_code"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
	Pages      []BookletPage   `json:"pages"`
}
