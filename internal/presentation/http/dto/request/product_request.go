package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=2,max=255"`
	Description   *string         `json:"description"`
	Brand         *string         `json:"brand" binding:"omitempty,max=100"`
	Category      *string         `json:"category" binding:"omitempty,max=100"`
	Barcode       *string         `json:"barcode" binding:"omitempty,max=64"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         int             `json:"stock" binding:"min=0"`
	StockLocation *string         `json:"stock_location" binding:"omitempty,max=100"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description   *string          `json:"description"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	Barcode       *string          `json:"barcode" binding:"omitempty,max=64"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	StockLocation *string          `json:"stock_location" binding:"omitempty,max=100"`
}
