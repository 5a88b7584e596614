package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintReceipt prints the receipt of a sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := paramID(c, "sale_id")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), id)
	if err != nil {
		// built but not printed: hand the receipt back so the screen can show it
		if receipt != nil {
			response.OKWithWarning(c, "Receipt generated but printing failed", receipt, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}

// PrintBooklet prints the payment booklet of an installment sale.
func (h *PrinterHandler) PrintBooklet(c *gin.Context) {
	id, ok := paramID(c, "sale_id")
	if !ok {
		return
	}

	booklet, err := h.printerService.PrintBooklet(c.Request.Context(), id)
	if err != nil {
		if booklet != nil {
			response.OKWithWarning(c, "Booklet generated but printing failed", booklet, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Booklet printed successfully", booklet)
}
