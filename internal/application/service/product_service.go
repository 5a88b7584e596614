package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Description   *string
	Brand         *string
	Category      *string
	Barcode       *string
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	Stock         int
	StockLocation *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Brand:         input.Brand,
		Category:      input.Category,
		Barcode:       input.Barcode,
		CostPrice:     input.CostPrice.Round(2),
		SalePrice:     input.SalePrice.Round(2),
		Stock:         input.Stock,
		StockLocation: input.StockLocation,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.NewPersistenceError("create product", err)
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load product", err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search, category string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search, category)
	if err != nil {
		return nil, apperror.NewPersistenceError("list products", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID            uuid.UUID
	Name          *string
	Description   *string
	Brand         *string
	Category      *string
	Barcode       *string
	CostPrice     *decimal.Decimal
	SalePrice     *decimal.Decimal
	Stock         *int
	StockLocation *string
}

// UpdateProduct updates a product. Past sales are unaffected because
// sale items carry their own copy of name and price.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Brand != nil {
		product.Brand = input.Brand
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.CostPrice != nil {
		product.CostPrice = input.CostPrice.Round(2)
	}
	if input.SalePrice != nil {
		product.SalePrice = input.SalePrice.Round(2)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.StockLocation != nil {
		product.StockLocation = input.StockLocation
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.NewPersistenceError("update product", err)
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete product", err)
	}
	return nil
}

func validateProduct(p *entity.Product) error {
	var errs []apperror.FieldError
	if p.Name == "" {
		errs = append(errs, apperror.NewFieldError("name", "Name is required"))
	}
	if p.CostPrice.IsNegative() {
		errs = append(errs, apperror.NewFieldError("cost_price", "Cost price cannot be negative"))
	}
	if p.SalePrice.IsNegative() {
		errs = append(errs, apperror.NewFieldError("sale_price", "Sale price cannot be negative"))
	}
	if p.Stock < 0 {
		errs = append(errs, apperror.NewFieldError("stock", "Stock cannot be negative"))
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}
