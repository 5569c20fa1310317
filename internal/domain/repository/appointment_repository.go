package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// AppointmentFilterParams represents filter parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	State      *enum.AppointmentState
	ClientID   *uuid.UUID
	StartDate  string // inclusive, "2006-01-02"
	EndDate    string // inclusive, "2006-01-02"
}

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	// Collect transitions the appointment to collected and attaches the
	// invoice, conditional on the appointment still being pending. It reports
	// whether the transition was applied.
	Collect(ctx context.Context, id, invoiceID uuid.UUID) (bool, error)
	// Cancel transitions the appointment to canceled, conditional on it still
	// being pending.
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}
