package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/request"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InstallmentHandler handles installment and payment HTTP requests
type InstallmentHandler struct {
	installmentService *service.InstallmentService
}

// NewInstallmentHandler creates a new installment handler
func NewInstallmentHandler(installmentService *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// List handles listing installments. The status filter applies to the
// resolved status, so "overdue" finds unpaid installments past due.
func (h *InstallmentHandler) List(c *gin.Context) {
	filter, ok := bindInstallmentFilter(c)
	if !ok {
		return
	}

	result, err := h.installmentService.ListInstallments(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Installments retrieved successfully", result)
}

// Stats handles the installment totals per resolved status
func (h *InstallmentHandler) Stats(c *gin.Context) {
	filter, ok := bindInstallmentFilter(c)
	if !ok {
		return
	}

	stats, err := h.installmentService.Stats(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment stats retrieved successfully", stats)
}

// Export streams the filtered installments as a spreadsheet
func (h *InstallmentHandler) Export(c *gin.Context) {
	filter, ok := bindInstallmentFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.installmentService.ExportXLSX(c.Request.Context(), filter, &buf); err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "parcelas.xlsx", xlsxContentType, buf.Bytes())
}

// Preview computes a plan without persisting anything
func (h *InstallmentHandler) Preview(c *gin.Context) {
	var req request.PreviewPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	preview, err := h.installmentService.PreviewPlan(c.Request.Context(), &service.PreviewPlanInput{
		Total:    req.Total,
		Count:    req.Count,
		Previous: toDrafts(req.Installments),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan generated successfully", preview)
}

// Get handles getting an installment with its payments and balance
func (h *InstallmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	details, err := h.installmentService.GetInstallmentDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment retrieved successfully", details)
}

// ListPayments handles listing the payments of an installment
func (h *InstallmentHandler) ListPayments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	payments, err := h.installmentService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// RegisterPayment records a full or partial payment against an installment
func (h *InstallmentHandler) RegisterPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req request.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.installmentService.RegisterPayment(c.Request.Context(), &service.RegisterPaymentInput{
		InstallmentID: id,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate.Ptr(),
		Notes:         req.Notes,
		PayFull:       req.PayFull,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment registered successfully", payment)
}
