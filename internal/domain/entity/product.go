package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an item of the store catalogue
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null;index" json:"name"`
	Description   *string         `gorm:"type:text" json:"description,omitempty"`
	Brand         *string         `gorm:"size:100" json:"brand,omitempty"`
	Category      *string         `gorm:"size:100;index" json:"category,omitempty"`
	Barcode       *string         `gorm:"size:64;index" json:"barcode,omitempty"`
	CostPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost_price"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"sale_price"`
	Stock         int             `gorm:"default:0" json:"stock"`
	StockLocation *string         `gorm:"size:100" json:"stock_location,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
