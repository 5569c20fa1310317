package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalize_ProductAndService(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)
	ctx := context.Background()

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	shampoo := seedProduct(t, db, "Shampoo", 1500, 5)

	invoice, err := svc.Finalize(ctx, &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeService, ItemID: haircut.ID, Quantity: 1, UnitPrice: 5000, Subtotal: 5000},
			{ItemType: enum.ItemTypeProduct, ItemID: shampoo.ID, Quantity: 2, UnitPrice: 1500, Subtotal: 3000},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.Equal(t, enum.InvoiceCollected, invoice.State)
	assert.Len(t, invoice.Lines, 2)
	assert.Equal(t, int64(8000), invoice.Total())

	var product entity.Product
	require.NoError(t, db.First(&product, "id = ?", shampoo.ID).Error)
	assert.Equal(t, 3, product.Stock)

	var service entity.Service
	require.NoError(t, db.First(&service, "id = ?", haircut.ID).Error)
	assert.Equal(t, int64(1), service.RealizedCount)
}

func TestFinalize_SubtotalMismatchRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	client := seedClient(t, db, "Ana")
	shampoo := seedProduct(t, db, "Shampoo", 1500, 5)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeProduct, ItemID: shampoo.ID, Quantity: 2, UnitPrice: 1500, Subtotal: 2999},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Nothing persisted, stock untouched
	var count int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFinalize_EmptyLinesRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)
	client := seedClient(t, db, "Ana")

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestFinalize_UnknownClient(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)
	shampoo := seedProduct(t, db, "Shampoo", 1500, 5)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      uuid.New(),
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeProduct, ItemID: shampoo.ID, Quantity: 1, UnitPrice: 1500, Subtotal: 1500},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFinalize_InsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	shampoo := seedProduct(t, db, "Shampoo", 1500, 3)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeService, ItemID: haircut.ID, Quantity: 1, UnitPrice: 5000, Subtotal: 5000},
			{ItemType: enum.ItemTypeProduct, ItemID: shampoo.ID, Quantity: 4, UnitPrice: 1500, Subtotal: 6000},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConsistency))

	// The whole transaction rolled back: no invoice, stock and the service
	// counter untouched even though the service line came first.
	var count int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var product entity.Product
	require.NoError(t, db.First(&product, "id = ?", shampoo.ID).Error)
	assert.Equal(t, 3, product.Stock)

	var service entity.Service
	require.NoError(t, db.First(&service, "id = ?", haircut.ID).Error)
	assert.Equal(t, int64(0), service.RealizedCount)
}

func TestFinalize_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)
	client := seedClient(t, db, "Ana")

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeProduct, ItemID: uuid.New(), Quantity: 1, UnitPrice: 1500, Subtotal: 1500},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFinalize_CollectsAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-18", "14:00", enum.AppointmentPending)

	invoice, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "card",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeService, ItemID: haircut.ID, Quantity: 1, UnitPrice: 5000, Subtotal: 5000, AppointmentID: &appointment.ID},
		},
	})
	require.NoError(t, err)

	var stored entity.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appointment.ID).Error)
	assert.Equal(t, enum.AppointmentCollected, stored.State)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, invoice.ID, *stored.InvoiceID)
}

func TestFinalize_CounterCreditsAppointmentService(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	// Booked for a haircut, billed as a combo package. The realized counter
	// belongs to the service the visit was booked for.
	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	combo := seedService(t, db, "Combo", 9000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-18", "14:00", enum.AppointmentPending)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeService, ItemID: combo.ID, Quantity: 1, UnitPrice: 9000, Subtotal: 9000, AppointmentID: &appointment.ID},
		},
	})
	require.NoError(t, err)

	var booked, billed entity.Service
	require.NoError(t, db.First(&booked, "id = ?", haircut.ID).Error)
	require.NoError(t, db.First(&billed, "id = ?", combo.ID).Error)
	assert.Equal(t, int64(1), booked.RealizedCount)
	assert.Equal(t, int64(0), billed.RealizedCount)
}

func TestFinalize_CollectedAppointmentConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)
	ctx := context.Background()

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-18", "14:00", enum.AppointmentPending)

	line := LineInput{
		ItemType: enum.ItemTypeService, ItemID: haircut.ID,
		Quantity: 1, UnitPrice: 5000, Subtotal: 5000,
		AppointmentID: &appointment.ID,
	}

	_, err := svc.Finalize(ctx, &FinalizeInput{ClientID: client.ID, PaymentMethod: "cash", Lines: []LineInput{line}})
	require.NoError(t, err)

	// Finalizing against the same appointment again must conflict and leave
	// the counter where it was.
	_, err = svc.Finalize(ctx, &FinalizeInput{ClientID: client.ID, PaymentMethod: "cash", Lines: []LineInput{line}})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	var service entity.Service
	require.NoError(t, db.First(&service, "id = ?", haircut.ID).Error)
	assert.Equal(t, int64(1), service.RealizedCount)

	var count int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFinalize_CanceledAppointmentConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	client := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	appointment := seedAppointment(t, db, client.ID, haircut.ID, "2025-06-18", "14:00", enum.AppointmentCanceled)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		ClientID:      client.ID,
		PaymentMethod: "cash",
		Lines: []LineInput{
			{ItemType: enum.ItemTypeService, ItemID: haircut.ID, Quantity: 1, UnitPrice: 5000, Subtotal: 5000, AppointmentID: &appointment.ID},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestFinalize_ConcurrentStockContention(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	client := seedClient(t, db, "Ana")
	shampoo := seedProduct(t, db, "Shampoo", 1500, 3)

	// Two concurrent sales of 2 units against 3 in stock: exactly one may
	// succeed, the other must fail without driving stock negative.
	input := func() *FinalizeInput {
		return &FinalizeInput{
			ClientID:      client.ID,
			PaymentMethod: "cash",
			Lines: []LineInput{
				{ItemType: enum.ItemTypeProduct, ItemID: shampoo.ID, Quantity: 2, UnitPrice: 1500, Subtotal: 3000},
			},
		}
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Finalize(context.Background(), input())
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperror.IsKind(err, apperror.KindConsistency))
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	var product entity.Product
	require.NoError(t, db.First(&product, "id = ?", shampoo.ID).Error)
	assert.Equal(t, 1, product.Stock)
}

func TestGetInvoice_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBillingService(db)

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
