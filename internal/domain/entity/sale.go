package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
)

// Sale is a completed checkout. Its items are immutable once created and it
// owns the installments generated for credit-installment sales.
type Sale struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClientID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName       string             `gorm:"size:255;not null" json:"client_name"`
	Subtotal         decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Discount         decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"discount"`
	Addition         decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"addition"`
	TotalAmount      decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentMethod    enum.PaymentMethod `gorm:"size:32;not null;index" json:"payment_method"`
	Status           enum.SaleStatus    `gorm:"default:0" json:"status"`
	InstallmentCount int                `gorm:"default:0" json:"installment_count"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	// Relationships
	Items        []SaleItem    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Installments []Installment `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"installments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a sale. Product name and price are copied at sale
// time so later catalogue edits do not rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Position    int             `gorm:"not null" json:"position"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
