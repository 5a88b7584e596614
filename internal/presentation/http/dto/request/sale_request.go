package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// SaleItemRequest is one line of a checkout. UnitPrice defaults to the catalogue price.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// PlanInstallmentRequest is one row of a plan edited in the preview
type PlanInstallmentRequest struct {
	InstallmentNumber int             `json:"installment_number" binding:"required,min=1"`
	Value             decimal.Decimal `json:"value"`
	DueDate           Date            `json:"due_date"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	ClientID         uuid.UUID                `json:"client_id" binding:"required"`
	Items            []SaleItemRequest        `json:"items" binding:"required,min=1,dive"`
	Discount         decimal.Decimal          `json:"discount"`
	Addition         decimal.Decimal          `json:"addition"`
	PaymentMethod    enum.PaymentMethod       `json:"payment_method" binding:"required"`
	InstallmentCount int                      `json:"installment_count" binding:"omitempty,min=1"`
	Installments     []PlanInstallmentRequest `json:"installments" binding:"omitempty,dive"`
	Notes            *string                  `json:"notes"`
}
