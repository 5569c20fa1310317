package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput carries the fields to register a client
type CreateClientInput struct {
	Name  string
	Phone *string
	Email *string
	Notes *string
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	client := &entity.Client{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		Notes: input.Notes,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client", id)
	}
	return client, nil
}

// UpdateClientInput carries the updatable client fields. Nil leaves the field
// unchanged.
type UpdateClientInput struct {
	Name  *string
	Phone *string
	Email *string
	Notes *string
}

// Update updates an existing client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete soft-deletes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

// List lists clients with pagination and name search
func (s *ClientService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}
