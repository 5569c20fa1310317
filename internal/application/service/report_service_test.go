package service

import (
	"context"
	"testing"
	"time"

	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(db *gorm.DB) *ReportService {
	svc := NewReportService(repository.NewAnalyticsRepository(db))
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestGetPeriodReport(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	ana := seedClient(t, db, "Ana")
	bea := seedClient(t, db, "Bea")
	haircut := seedService(t, db, "Haircut", 5000)
	coloring := seedService(t, db, "Coloring", 12000)
	shampoo := seedProduct(t, db, "Shampoo", 1500, 10)

	june10 := time.Date(2025, time.June, 10, 11, 0, 0, 0, time.Local)
	june12 := time.Date(2025, time.June, 12, 15, 0, 0, 0, time.Local)

	seedInvoice(t, db, ana.ID, june10,
		serviceLine(haircut.ID, 1, 5000),
		productLine(shampoo.ID, 1, 1500))
	seedInvoice(t, db, bea.ID, june12,
		serviceLine(coloring.ID, 1, 12000),
		serviceLine(haircut.ID, 1, 5000))

	// Outside the range on both sides.
	seedInvoice(t, db, ana.ID, time.Date(2025, time.June, 9, 23, 0, 0, 0, time.Local),
		serviceLine(haircut.ID, 3, 5000))
	seedInvoice(t, db, ana.ID, time.Date(2025, time.June, 13, 1, 0, 0, 0, time.Local),
		productLine(shampoo.ID, 5, 1500))

	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-10", "11:00", enum.AppointmentCollected)
	seedAppointment(t, db, bea.ID, haircut.ID, "2025-06-11", "11:00", enum.AppointmentCanceled)
	seedAppointment(t, db, bea.ID, coloring.ID, "2025-06-12", "15:00", enum.AppointmentCollected)

	report, err := svc.GetPeriodReport(context.Background(), "2025-06-10", "2025-06-12")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", report.From)
	assert.Equal(t, "2025-06-12", report.To)
	assert.InDelta(t, 235.0, report.Revenue, 0.001)
	assert.Equal(t, int64(2), report.ClientsServed)
	assert.Equal(t, int64(3), report.ServicesSold)
	assert.Equal(t, int64(1), report.ProductsSold)
	assert.Equal(t, int64(2), report.Appointments)

	// Service breakdown ordered by revenue.
	require.Len(t, report.ServiceSales, 2)
	assert.Equal(t, "Coloring", report.ServiceSales[0].Name)
	assert.InDelta(t, 120.0, report.ServiceSales[0].Revenue, 0.001)
	assert.Equal(t, "Haircut", report.ServiceSales[1].Name)
	assert.Equal(t, int64(2), report.ServiceSales[1].UnitsSold)
	assert.InDelta(t, 100.0, report.ServiceSales[1].Revenue, 0.001)

	require.Len(t, report.ProductSales, 1)
	assert.Equal(t, "Shampoo", report.ProductSales[0].Name)
	assert.Equal(t, int64(1), report.ProductSales[0].UnitsSold)
}

func TestGetPeriodReport_DefaultsToToday(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	ana := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	seedInvoice(t, db, ana.ID, testNow, serviceLine(haircut.ID, 1, 5000))
	seedInvoice(t, db, ana.ID, testNow.AddDate(0, 0, -1), serviceLine(haircut.ID, 1, 5000))

	report, err := svc.GetPeriodReport(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-18", report.From)
	assert.Equal(t, "2025-06-18", report.To)
	assert.InDelta(t, 50.0, report.Revenue, 0.001)
}

func TestGetPeriodReport_InvalidRange(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReportService(db)

	_, err := svc.GetPeriodReport(context.Background(), "2025-06-12", "2025-06-10")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.GetPeriodReport(context.Background(), "12/06/2025", "2025-06-12")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
