package request

import "github.com/shopspring/decimal"

// RegisterPaymentRequest represents a payment against one installment
type RegisterPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *Date           `json:"payment_date"`
	Notes       *string         `json:"notes" binding:"omitempty,max=500"`
	PayFull     bool            `json:"pay_full"`
}

// PreviewPlanRequest asks for a plan without creating a sale
type PreviewPlanRequest struct {
	Total        decimal.Decimal          `json:"total"`
	Count        int                      `json:"count" binding:"omitempty,min=1"`
	Installments []PlanInstallmentRequest `json:"installments" binding:"omitempty,dive"`
}

// InstallmentFilterRequest represents installment list filters
type InstallmentFilterRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	SaleID   string `form:"sale_id"`
	ClientID string `form:"client_id"`
	DueFrom  string `form:"due_from"`
	DueTo    string `form:"due_to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// SaleFilterRequest represents sale list filters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	ClientID      string `form:"client_id"`
	PaymentMethod string `form:"payment_method"`
	From          string `form:"from"`
	To            string `form:"to"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
