package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	domainRepo "github.com/salonhq/salon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create persists the invoice together with its lines. The ledger exposes no
// update or delete; a correction is a new invoice.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		Preload("Lines").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Invoice{})

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Lines").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}
