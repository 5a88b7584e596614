package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is an append-only ledger entry recorded against an installment
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InstallmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"installment_id"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ClientName    string          `gorm:"size:255;not null" json:"client_name"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate keeps the ledger append-only.
func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	return ErrPaymentImmutable
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
