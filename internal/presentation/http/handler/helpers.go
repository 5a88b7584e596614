package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/utils"
)

// paramID parses a UUID path parameter. On failure it writes a 400 and returns false.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(pagination.DefaultPerPage)))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}
