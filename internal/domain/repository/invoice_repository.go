package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// InvoiceFilterParams represents filter parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	ClientID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceRepository defines the interface for the invoice ledger. The ledger
// is append-only: there is no update or delete.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}
