package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name       string
	CPF        *string
	RG         *string
	Email      *string
	Phone      *string
	Occupation *string
	BirthDate  *time.Time
	Address    *string
	Notes      *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldValidationError("name", "Name is required")
	}

	client := &entity.Client{
		Name:       name,
		CPF:        input.CPF,
		RG:         input.RG,
		Email:      input.Email,
		Phone:      input.Phone,
		Occupation: input.Occupation,
		BirthDate:  input.BirthDate,
		Address:    input.Address,
		Notes:      input.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, apperror.NewPersistenceError("create client", err)
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load client", err)
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients matching search on name, cpf or phone
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, apperror.NewPersistenceError("list clients", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input. Nil fields are left as they are.
type UpdateClientInput struct {
	ID         uuid.UUID
	Name       *string
	CPF        *string
	RG         *string
	Email      *string
	Phone      *string
	Occupation *string
	BirthDate  *time.Time
	Address    *string
	Notes      *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldValidationError("name", "Name cannot be empty")
		}
		client.Name = name
	}
	if input.CPF != nil {
		client.CPF = input.CPF
	}
	if input.RG != nil {
		client.RG = input.RG
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Occupation != nil {
		client.Occupation = input.Occupation
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}
	if input.Address != nil {
		client.Address = input.Address
	}
	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, apperror.NewPersistenceError("update client", err)
	}

	return client, nil
}

// DeleteClient soft-deletes a client. Sales keep the denormalized name.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete client", err)
	}
	return nil
}
