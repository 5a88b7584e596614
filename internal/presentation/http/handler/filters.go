package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/request"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/utils"
)

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := request.ParseDate(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func optionalID(c *gin.Context, name, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := utils.ParseUUID(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// bindInstallmentFilter reads the installment list filters from the query string
func bindInstallmentFilter(c *gin.Context) (repository.InstallmentFilter, bool) {
	var filter repository.InstallmentFilter
	var req request.InstallmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return filter, false
	}

	filter.Search = req.Search
	if req.Status != "" {
		status, err := enum.ParseInstallmentStatus(req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid status, expected pending, overdue or paid")
			return filter, false
		}
		filter.Status = &status
	}

	var ok bool
	if filter.SaleID, ok = optionalID(c, "sale_id", req.SaleID); !ok {
		return filter, false
	}
	if filter.ClientID, ok = optionalID(c, "client_id", req.ClientID); !ok {
		return filter, false
	}
	if filter.DueFrom, ok = queryDate(c, "due_from", req.DueFrom); !ok {
		return filter, false
	}
	if filter.DueTo, ok = queryDate(c, "due_to", req.DueTo); !ok {
		return filter, false
	}
	return filter, true
}

// bindSaleFilter reads the sale list filters from the query string
func bindSaleFilter(c *gin.Context) (repository.SaleFilter, bool) {
	var filter repository.SaleFilter
	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return filter, false
	}

	filter.Search = req.Search
	if req.PaymentMethod != "" {
		method, err := enum.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			response.BadRequest(c, "Invalid payment_method")
			return filter, false
		}
		filter.PaymentMethod = &method
	}

	var ok bool
	if filter.ClientID, ok = optionalID(c, "client_id", req.ClientID); !ok {
		return filter, false
	}
	if filter.From, ok = queryDate(c, "from", req.From); !ok {
		return filter, false
	}
	if filter.To, ok = queryDate(c, "to", req.To); !ok {
		return filter, false
	}
	if filter.To != nil {
		// inclusive of the whole day
		end := filter.To.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, true
}

func toDrafts(rows []request.PlanInstallmentRequest) []installment.Draft {
	if len(rows) == 0 {
		return nil
	}
	drafts := make([]installment.Draft, len(rows))
	for i, row := range rows {
		drafts[i] = installment.Draft{
			Number:  row.InstallmentNumber,
			Value:   row.Value,
			DueDate: row.DueDate.Time,
		}
	}
	return drafts
}
