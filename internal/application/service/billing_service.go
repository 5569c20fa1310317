package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// BillingService turns a set of selected lines into an immutable invoice
// while adjusting stock, crediting service counters and collecting linked
// appointments. The whole operation runs inside one unit of work: either all
// effects land or none do.
type BillingService struct {
	uow             repository.UnitOfWork
	invoiceRepo     repository.InvoiceRepository
	clientRepo      repository.ClientRepository
	productRepo     repository.ProductRepository
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
}

// NewBillingService creates a new billing service
func NewBillingService(
	uow repository.UnitOfWork,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
) *BillingService {
	return &BillingService{
		uow:             uow,
		invoiceRepo:     invoiceRepo,
		clientRepo:      clientRepo,
		productRepo:     productRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
	}
}

// LineInput represents one line of a finalize request. Prices are in cents.
type LineInput struct {
	ItemType      enum.ItemType
	ItemID        uuid.UUID
	Quantity      int
	UnitPrice     int64
	Subtotal      int64
	AppointmentID *uuid.UUID
}

// FinalizeInput represents the finalize request
type FinalizeInput struct {
	ClientID      uuid.UUID
	PaymentMethod string
	Lines         []LineInput
}

// Finalize creates the invoice and applies every dependent effect atomically.
// Product lines decrement stock (refusing to go below zero); service lines
// credit the realized counter — against the appointment's own service when
// the line carries one, which may differ from the billed item; any line with
// an appointment collects it. A failure on any line aborts everything.
func (s *BillingService) Finalize(ctx context.Context, input *FinalizeInput) (*entity.Invoice, error) {
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	var out *entity.Invoice
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		client, err := s.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return apperror.NewNotFoundError("Client", input.ClientID)
		}

		invoice := &entity.Invoice{
			ClientID:      input.ClientID,
			State:         enum.InvoiceCollected,
			PaymentMethod: input.PaymentMethod,
			Lines:         make([]entity.InvoiceLine, 0, len(input.Lines)),
		}
		for _, line := range input.Lines {
			invoice.Lines = append(invoice.Lines, entity.InvoiceLine{
				ItemType:  line.ItemType,
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  int64(line.Quantity) * line.UnitPrice,
			})
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		for _, line := range input.Lines {
			var appointment *entity.Appointment
			if line.AppointmentID != nil {
				appointment, err = s.appointmentRepo.GetByID(ctx, *line.AppointmentID)
				if err != nil {
					return err
				}
				if appointment == nil {
					return apperror.NewNotFoundError("Appointment", *line.AppointmentID)
				}
				if appointment.State != enum.AppointmentPending {
					return apperror.NewConflictError(
						fmt.Sprintf("Appointment %s is already %s", appointment.ID, appointment.State))
				}
			}

			switch line.ItemType {
			case enum.ItemTypeProduct:
				ok, err := s.productRepo.DecrementStock(ctx, line.ItemID, line.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					product, err := s.productRepo.GetByID(ctx, line.ItemID)
					if err != nil {
						return err
					}
					if product == nil {
						return apperror.NewNotFoundError("Product", line.ItemID)
					}
					return apperror.NewConsistencyError(fmt.Sprintf(
						"Insufficient stock for product %s: %d available, %d requested",
						line.ItemID, product.Stock, line.Quantity))
				}

			case enum.ItemTypeService:
				// The counter credits the appointment's own service when the
				// line carries one; operators may bill a different item than
				// the service the visit was booked for.
				target := line.ItemID
				if appointment != nil {
					target = appointment.ServiceID
				}
				rows, err := s.serviceRepo.IncrementRealized(ctx, target, line.Quantity)
				if err != nil {
					return err
				}
				if rows == 0 {
					return apperror.NewNotFoundError("Service", target)
				}
			}

			if appointment != nil {
				ok, err := s.appointmentRepo.Collect(ctx, appointment.ID, invoice.ID)
				if err != nil {
					return err
				}
				if !ok {
					return apperror.NewConflictError(
						fmt.Sprintf("Appointment %s is no longer pending", appointment.ID))
				}
			}
		}

		out, err = s.invoiceRepo.GetWithLines(ctx, invoice.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "lines", Message: "at least one line is required"},
		})
	}

	var fieldErrors []apperror.FieldError
	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if !line.ItemType.Valid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   field + ".item_type",
				Message: fmt.Sprintf("unknown item type %q", line.ItemType),
			})
		}
		if line.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   field + ".quantity",
				Message: "quantity must be positive",
			})
		}
		if line.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   field + ".unit_price",
				Message: "unit price cannot be negative",
			})
		}
		if line.Quantity > 0 && line.Subtotal != int64(line.Quantity)*line.UnitPrice {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   field + ".subtotal",
				Message: "subtotal must equal quantity times unit price",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetInvoice retrieves an invoice with its lines
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice", id)
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *BillingService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}
