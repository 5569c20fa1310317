package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// CatalogService manages the billable catalog: services and retail products.
// Stock and realized counters are read-only here; billing finalization owns
// both mutations.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		productRepo: productRepo,
	}
}

// CreateServiceInput carries the fields to add a catalog service
type CreateServiceInput struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// CreateService adds a service to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if input.Price < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "price", Message: "price cannot be negative"},
		})
	}

	svc := &entity.Service{
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
	}
	svc.SetPriceFromDecimal(input.Price)

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service", id)
	}
	return svc, nil
}

// UpdateServiceInput carries the updatable service fields
type UpdateServiceInput struct {
	Name            *string
	Price           *float64
	DurationMinutes *int
}

// UpdateService updates a service's name, price or duration. The realized
// counter is never touched here.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *UpdateServiceInput) (*entity.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "price", Message: "price cannot be negative"},
			})
		}
		svc.SetPriceFromDecimal(*input.Price)
	}
	if input.DurationMinutes != nil {
		svc.DurationMinutes = *input.DurationMinutes
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService soft-deletes a service
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

// ListServices lists catalog services with pagination and name search
func (s *CatalogService) ListServices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// CreateProductInput carries the fields to add a retail product
type CreateProductInput struct {
	Name  string
	Price float64
	Stock int
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if input.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "price", Message: "price cannot be negative",
		})
	}
	if input.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "stock", Message: "stock cannot be negative",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	product := &entity.Product{
		Name:  input.Name,
		Stock: input.Stock,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product", id)
	}
	return product, nil
}

// UpdateProductInput carries the updatable product fields. Stock updates here
// represent restocking, not sales.
type UpdateProductInput struct {
	Name  *string
	Price *float64
	Stock *int
}

// UpdateProduct updates a product's name, price or stock level
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "price", Message: "price cannot be negative"},
			})
		}
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "stock", Message: "stock cannot be negative"},
			})
		}
		product.Stock = *input.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with pagination and name search
func (s *CatalogService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts lists products whose stock fell strictly below threshold
func (s *CatalogService) GetLowStockProducts(ctx context.Context, threshold int) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, threshold)
}
