package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptInstallment is one row of the plan printed under a credit sale.
type ReceiptInstallment struct {
	Label   string          `json:"label"`
	DueDate string          `json:"due_date"`
	Value   decimal.Decimal `json:"value"`
}

// Receipt is a printable view of a sale, composed at print time.
type Receipt struct {
	Header        ReceiptHeader        `json:"header"`
	SaleCode      string               `json:"sale_code"`
	Date          string               `json:"date"`
	Client        string               `json:"client"`
	PaymentMethod string               `json:"payment_method"`
	Items         []ReceiptItem        `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount"`
	Addition      decimal.Decimal      `json:"addition"`
	Total         decimal.Decimal      `json:"total"`
	Installments  []ReceiptInstallment `json:"installments,omitempty"`
}
