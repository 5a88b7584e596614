package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/request"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	params := pageParams(c)

	result, err := h.clientService.ListClients(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:       req.Name,
		CPF:        req.CPF,
		RG:         req.RG,
		Email:      req.Email,
		Phone:      req.Phone,
		Occupation: req.Occupation,
		BirthDate:  req.BirthDate.Ptr(),
		Address:    req.Address,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:         id,
		Name:       req.Name,
		CPF:        req.CPF,
		RG:         req.RG,
		Email:      req.Email,
		Phone:      req.Phone,
		Occupation: req.Occupation,
		BirthDate:  req.BirthDate.Ptr(),
		Address:    req.Address,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles deleting a client
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deleted successfully", nil)
}
