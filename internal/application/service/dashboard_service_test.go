package service

import (
	"context"
	"testing"
	"time"

	"github.com/salonhq/salon-api/internal/config"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDashboardConfig = config.DashboardConfig{
	DailyTarget:       1000,
	LowStockThreshold: 5,
	UpcomingLimit:     5,
}

// Wednesday, June 18 2025. The Sunday week runs June 15 - June 21.
var testNow = time.Date(2025, time.June, 18, 10, 0, 0, 0, time.Local)

func newTestDashboardService(db *gorm.DB) *DashboardService {
	svc := NewDashboardService(repository.NewAnalyticsRepository(db), testDashboardConfig)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestGetMetrics_DayAndWeekWindows(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)

	ana := seedClient(t, db, "Ana")
	bea := seedClient(t, db, "Bea")
	haircut := seedService(t, db, "Haircut", 5000)
	shampoo := seedProduct(t, db, "Shampoo", 1500, 10)

	// Today: two invoices, 250.00 revenue, 2 clients, 2 products, 1 service.
	seedInvoice(t, db, ana.ID, testNow,
		serviceLine(haircut.ID, 1, 5000),
		productLine(shampoo.ID, 2, 1500))
	// A second client billed today, no retail lines.
	seedInvoice(t, db, bea.ID, testNow.Add(2*time.Hour),
		serviceLine(haircut.ID, 1, 0))

	// Earlier this week (Monday): 100.00.
	monday := time.Date(2025, time.June, 16, 12, 0, 0, 0, time.Local)
	seedInvoice(t, db, ana.ID, monday, serviceLine(haircut.ID, 2, 5000))

	// Previous week: 200.00.
	prevWeek := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)
	seedInvoice(t, db, ana.ID, prevWeek, serviceLine(haircut.ID, 4, 5000))

	// Yesterday's invoice must not leak into today's numbers.
	seedInvoice(t, db, ana.ID, testNow.AddDate(0, 0, -1), productLine(shampoo.ID, 9, 1500))

	// Appointments today: one collected, one pending, one canceled.
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "09:00", enum.AppointmentCollected)
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "15:00", enum.AppointmentPending)
	seedAppointment(t, db, bea.ID, haircut.ID, "2025-06-18", "16:00", enum.AppointmentCanceled)

	metrics, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-18", metrics.Date)
	assert.InDelta(t, 80.0, metrics.Revenue, 0.001)
	assert.InDelta(t, 8.0, metrics.TargetPercent, 0.001)
	assert.Equal(t, int64(2), metrics.ClientsServed)
	assert.Equal(t, int64(2), metrics.ProductsSold)
	assert.Equal(t, int64(2), metrics.ServicesSold)

	// Week so far: yesterday 135 + Monday 100 + today 80 = 315.
	assert.InDelta(t, 315.0, metrics.WeekRevenue, 0.001)
	// Previous week closed at 200, so growth is (315-200)/200.
	assert.InDelta(t, 57.5, metrics.WeekGrowthPercent, 0.001)

	// Canceled appointments are excluded from the day summary.
	assert.Equal(t, int64(2), metrics.AppointmentsToday)
	assert.Equal(t, int64(1), metrics.AppointmentsByState.Collected)
	assert.Equal(t, int64(1), metrics.AppointmentsByState.Pending)
}

func TestGetMetrics_ZeroPreviousWeekGrowth(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)

	ana := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)
	seedInvoice(t, db, ana.ID, testNow, serviceLine(haircut.ID, 1, 5000))

	metrics, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)

	// No revenue last week: growth reports 0, not infinity.
	assert.Equal(t, 0.0, metrics.WeekGrowthPercent)
	assert.InDelta(t, 50.0, metrics.WeekRevenue, 0.001)
}

func TestGetMetrics_TargetPercentRounded(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)

	ana := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 12345)
	seedInvoice(t, db, ana.ID, testNow, serviceLine(haircut.ID, 1, 12345))

	metrics, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)

	// 123.45 of a 1000 target is 12.345 percent, reported as 12.
	assert.InDelta(t, 123.45, metrics.Revenue, 0.001)
	assert.Equal(t, 12.0, metrics.TargetPercent)
}

func TestGetUpcoming_OneHourLookback(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)

	ana := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)

	// now is 10:00, so the strip starts at 09:00.
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "08:30", enum.AppointmentPending)   // past the lookback
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "09:00", enum.AppointmentPending)   // exactly one hour ago
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "11:00", enum.AppointmentPending)   // upcoming
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "12:00", enum.AppointmentCanceled)  // stays visible
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "13:00", enum.AppointmentCollected) // hidden
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-19", "11:00", enum.AppointmentPending)   // tomorrow

	upcoming, err := svc.GetUpcoming(context.Background())
	require.NoError(t, err)

	require.Len(t, upcoming, 3)
	assert.Equal(t, "09:00", upcoming[0].Time)
	assert.Equal(t, enum.AppointmentPending, upcoming[0].State)
	assert.Equal(t, "11:00", upcoming[1].Time)
	assert.Equal(t, "12:00", upcoming[2].Time)
	assert.Equal(t, enum.AppointmentCanceled, upcoming[2].State)
	assert.Equal(t, "Ana", upcoming[0].ClientName)
	assert.Equal(t, "Haircut", upcoming[0].ServiceName)
}

func TestGetNotifications_LowStockAndOverdue(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)

	ana := seedClient(t, db, "Ana")
	haircut := seedService(t, db, "Haircut", 5000)

	shampoo := seedProduct(t, db, "Shampoo", 1500, 3) // below threshold 5
	seedProduct(t, db, "Conditioner", 1800, 5)        // at threshold, no alert
	seedProduct(t, db, "Hair Spray", 2200, 12)        // plenty

	overdue := seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-16", "14:00", enum.AppointmentPending) // 2 days ago
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-17", "14:00", enum.AppointmentCollected)          // settled
	seedAppointment(t, db, ana.ID, haircut.ID, "2025-06-18", "14:00", enum.AppointmentPending)            // today, not overdue

	notifications, err := svc.GetNotifications(context.Background())
	require.NoError(t, err)

	require.Len(t, notifications.LowStock, 1)
	assert.Equal(t, shampoo.ID, notifications.LowStock[0].ID)
	assert.Equal(t, "Shampoo", notifications.LowStock[0].Name)
	assert.Equal(t, 3, notifications.LowStock[0].Stock)
	assert.Equal(t, "Shampoo has only 3 left in stock", notifications.LowStock[0].Message)

	require.Len(t, notifications.OverdueUnpaid, 1)
	alert := notifications.OverdueUnpaid[0]
	assert.Equal(t, overdue.ID, alert.ID)
	assert.Equal(t, "Ana", alert.ClientName)
	assert.InDelta(t, 50.0, alert.Amount, 0.001)
	assert.Equal(t, "2025-06-16", alert.Date)
	assert.Equal(t, "2 days ago", alert.RelativeAge)
	assert.Equal(t, "Ana has an uncollected appointment from 2 days ago", alert.Message)
}

func TestRelativeAge(t *testing.T) {
	today := time.Date(2025, time.June, 18, 0, 0, 0, 0, time.Local)

	cases := []struct {
		date string
		want string
	}{
		{"2025-06-18", "today"},
		{"2025-06-17", "yesterday"},
		{"2025-06-15", "3 days ago"},
		{"2025-06-10", "1 week ago"},
		{"2025-06-02", "2 weeks ago"},
		{"2025-05-10", "1 month ago"},
		{"2025-03-01", "3 months ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, relativeAge(tc.date, today), "date %s", tc.date)
	}
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday resolves to the preceding Sunday.
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local), startOfWeek(testNow))
	// Sunday resolves to itself.
	sunday := time.Date(2025, time.June, 15, 18, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local), startOfWeek(sunday))
}
