package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// AppointmentService manages the appointment book. Collection is not exposed
// here; appointments are collected only through billing finalization.
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	clientRepo      repository.ClientRepository
	serviceRepo     repository.ServiceRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		serviceRepo:     serviceRepo,
	}
}

// CreateAppointmentInput carries the fields to book a visit
type CreateAppointmentInput struct {
	ClientID  uuid.UUID
	ServiceID uuid.UUID
	UserID    *uuid.UUID
	Date      string
	Time      string
	Notes     *string
}

// Create books a new pending appointment
func (s *AppointmentService) Create(ctx context.Context, input *CreateAppointmentInput) (*entity.Appointment, error) {
	var fieldErrors []apperror.FieldError
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "date", Message: "must be a date in YYYY-MM-DD format",
		})
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "time", Message: "must be a time in HH:MM format",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client", input.ClientID)
	}
	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service", input.ServiceID)
	}

	appointment := &entity.Appointment{
		ClientID:  input.ClientID,
		ServiceID: input.ServiceID,
		UserID:    input.UserID,
		Date:      input.Date,
		Time:      input.Time,
		Notes:     input.Notes,
		State:     enum.AppointmentPending,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, appointment.ID)
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment", id)
	}
	return appointment, nil
}

// List lists appointments with filtering and pagination
func (s *AppointmentService) List(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// Cancel moves a pending appointment to canceled. Collected or already
// canceled appointments are refused.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	ok, err := s.appointmentRepo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		appointment, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, apperror.NewNotFoundError("Appointment", id)
		}
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Appointment %s is already %s", id, appointment.State))
	}
	return s.GetByID(ctx, id)
}
