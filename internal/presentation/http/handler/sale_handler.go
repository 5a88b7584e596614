package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/request"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	filter, ok := bindSaleFilter(c)
	if !ok {
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Create handles a checkout. Installment sales get their plan created in
// the same transaction.
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		ClientID:         req.ClientID,
		Items:            items,
		Discount:         req.Discount,
		Addition:         req.Addition,
		PaymentMethod:    req.PaymentMethod,
		InstallmentCount: req.InstallmentCount,
		Installments:     toDrafts(req.Installments),
		Notes:            req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a sale with its items and installments
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Installments lists the installments of a sale with resolved status
func (h *SaleHandler) Installments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	installments, err := h.saleService.SaleInstallments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installments retrieved successfully", installments)
}

// Booklet returns the payment booklet split into printable pages
func (h *SaleHandler) Booklet(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booklet, err := h.saleService.Booklet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booklet generated successfully", booklet)
}

// Delete removes a sale together with its installments and payments
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}
