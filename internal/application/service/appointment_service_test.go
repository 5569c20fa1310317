package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAppointmentService(db *gorm.DB) *AppointmentService {
	return NewAppointmentService(
		repository.NewAppointmentRepository(db),
		repository.NewClientRepository(db),
		repository.NewServiceRepository(db),
	)
}

func TestCreateAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)

	appointment, err := svc.Create(context.Background(), &CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: haircut.ID,
		Date:      "2025-06-20",
		Time:      "14:30",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.AppointmentPending, appointment.State)
	assert.Equal(t, "2025-06-20", appointment.Date)
	assert.Equal(t, "14:30", appointment.Time)
	assert.Equal(t, "Ana", appointment.Client.Name)
}

func TestCreateAppointment_BadDateOrTime(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)

	_, err := svc.Create(context.Background(), &CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: haircut.ID,
		Date:      "20/06/2025",
		Time:      "2pm",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateAppointment_UnknownService(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)
	client := seedClient(t, db, "Ana")

	_, err := svc.Create(context.Background(), &CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: uuid.New(),
		Date:      "2025-06-20",
		Time:      "14:30",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCancelAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-20", "14:30", enum.AppointmentPending)

	canceled, err := svc.Cancel(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AppointmentCanceled, canceled.State)

	// Canceling again conflicts; the state does not change.
	_, err = svc.Cancel(context.Background(), appointment.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	var stored entity.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appointment.ID).Error)
	assert.Equal(t, enum.AppointmentCanceled, stored.State)
}

func TestCancelAppointment_Collected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-20", "14:30", enum.AppointmentCollected)

	_, err := svc.Cancel(context.Background(), appointment.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCancelAppointment_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAppointmentService(db)

	_, err := svc.Cancel(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
