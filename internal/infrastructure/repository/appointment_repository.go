package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	domainRepo "github.com/salonhq/salon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Appointment{})

	if params.State != nil {
		query = query.Where("state = ?", *params.State)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.StartDate != "" {
		query = query.Where("date >= ?", params.StartDate)
	}

	if params.EndDate != "" {
		query = query.Where("date <= ?", params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Service").
		Order("date ASC, time ASC").
		Find(&appointments).Error

	return appointments, total, err
}

// Collect performs the pending -> collected transition as a conditional
// update. RowsAffected == 0 means the appointment is missing or no longer
// pending; callers disambiguate with GetByID inside the same transaction.
func (r *appointmentRepository) Collect(ctx context.Context, id, invoiceID uuid.UUID) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND state = ?", id, enum.AppointmentPending).
		Updates(map[string]interface{}{
			"state":      enum.AppointmentCollected,
			"invoice_id": invoiceID,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Cancel performs the pending -> canceled transition as a conditional update
func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND state = ?", id, enum.AppointmentPending).
		Update("state", enum.AppointmentCanceled)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
