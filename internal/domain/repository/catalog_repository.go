package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// ServiceRepository defines the interface for service catalog data access
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error)
	// IncrementRealized atomically adds quantity to the service's realized
	// count and returns the number of rows touched (0 when the service does
	// not exist).
	IncrementRealized(ctx context.Context, id uuid.UUID, quantity int) (int64, error)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error)
	// DecrementStock atomically subtracts quantity from stock, refusing to
	// drive it below zero. It reports whether the decrement was applied.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}
