package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/config"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// DashboardService aggregates the ledger and the appointment book into the
// numbers the home screen shows. All reads are anchored on a single "now"
// captured at the top of each call so the windows agree with each other.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	cfg           config.DashboardConfig
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, cfg config.DashboardConfig) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		cfg:           cfg,
		now:           time.Now,
	}
}

// DashboardMetrics is the aggregate payload for the dashboard header
type DashboardMetrics struct {
	Date                string                              `json:"date"`
	Revenue             float64                             `json:"revenue"`
	DailyTarget         float64                             `json:"daily_target"`
	TargetPercent       float64                             `json:"target_percent"`
	ClientsServed       int64                               `json:"clients_served"`
	ProductsSold        int64                               `json:"products_sold"`
	ServicesSold        int64                               `json:"services_sold"`
	WeekRevenue         float64                             `json:"week_revenue"`
	WeekGrowthPercent   float64                             `json:"week_growth_percent"`
	AppointmentsToday   int64                               `json:"appointments_today"`
	AppointmentsByState *repository.AppointmentSummaryResult `json:"appointments_by_state"`
}

// GetMetrics computes the dashboard header numbers for the current day and
// the current Sunday-to-Saturday week.
func (s *DashboardService) GetMetrics(ctx context.Context) (*DashboardMetrics, error) {
	now := s.now()
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	prevWeekStart := weekStart.AddDate(0, 0, -7)

	revenue, err := s.analyticsRepo.RevenueBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	clients, err := s.analyticsRepo.ClientsServedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	products, err := s.analyticsRepo.UnitsSoldBetween(ctx, enum.ItemTypeProduct, dayStart, dayEnd)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	services, err := s.analyticsRepo.UnitsSoldBetween(ctx, enum.ItemTypeService, dayStart, dayEnd)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	weekRevenue, err := s.analyticsRepo.RevenueBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	prevWeekRevenue, err := s.analyticsRepo.RevenueBetween(ctx, prevWeekStart, weekStart)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	summary, err := s.analyticsRepo.AppointmentSummary(ctx, dayStart.Format(dateLayout))
	if err != nil {
		return nil, apperror.NewReportError(err)
	}

	revenueAmount := centsToAmount(revenue)
	return &DashboardMetrics{
		Date:                dayStart.Format(dateLayout),
		Revenue:             revenueAmount,
		DailyTarget:         s.cfg.DailyTarget,
		TargetPercent:       percentOf(revenueAmount, s.cfg.DailyTarget),
		ClientsServed:       clients,
		ProductsSold:        products,
		ServicesSold:        services,
		WeekRevenue:         centsToAmount(weekRevenue),
		WeekGrowthPercent:   growthPercent(prevWeekRevenue, weekRevenue),
		AppointmentsToday:   summary.Total,
		AppointmentsByState: summary,
	}, nil
}

// GetUpcoming returns today's remaining appointments, earliest first, with a
// one hour lookback so a visit that just started stays on the strip. Canceled
// visits stay visible so the gap in the day shows.
func (s *DashboardService) GetUpcoming(ctx context.Context) ([]repository.UpcomingAppointmentResult, error) {
	now := s.now()
	rows, err := s.analyticsRepo.UpcomingAppointments(ctx,
		now.Format(dateLayout), now.Add(-time.Hour).Format("15:04"), s.cfg.UpcomingLimit)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	return rows, nil
}

// LowStockAlert flags a product running out
type LowStockAlert struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Stock   int       `json:"stock"`
	Message string    `json:"message"`
}

// OverdueAlert is a pending appointment left over from a previous day, with
// the booked service price as the outstanding amount
type OverdueAlert struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	RelativeAge string    `json:"relative_age"`
	Message     string    `json:"message"`
}

// DashboardNotifications groups the dashboard alert collections
type DashboardNotifications struct {
	LowStock      []LowStockAlert `json:"low_stock"`
	OverdueUnpaid []OverdueAlert  `json:"overdue_unpaid"`
}

// GetNotifications lists low stock alerts and pending appointments left over
// from previous days.
func (s *DashboardService) GetNotifications(ctx context.Context) (*DashboardNotifications, error) {
	notifications := &DashboardNotifications{
		LowStock:      []LowStockAlert{},
		OverdueUnpaid: []OverdueAlert{},
	}

	lowStock, err := s.analyticsRepo.LowStockProducts(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	for _, p := range lowStock {
		notifications.LowStock = append(notifications.LowStock, LowStockAlert{
			ID:      p.ID,
			Name:    p.Name,
			Stock:   p.Stock,
			Message: fmt.Sprintf("%s has only %d left in stock", p.Name, p.Stock),
		})
	}

	today := startOfDay(s.now())
	overdue, err := s.analyticsRepo.OverduePendingAppointments(ctx, today.Format(dateLayout))
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	for _, a := range overdue {
		age := relativeAge(a.Date, today)
		notifications.OverdueUnpaid = append(notifications.OverdueUnpaid, OverdueAlert{
			ID:          a.ID,
			ClientName:  a.ClientName,
			Amount:      centsToAmount(a.Amount),
			Date:        a.Date,
			RelativeAge: age,
			Message:     fmt.Sprintf("%s has an uncollected appointment from %s", a.ClientName, age),
		})
	}

	return notifications, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday that starts t's week
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// percentOf returns value as a rounded percentage of target
func percentOf(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(value / target * 100)
}

// growthPercent returns the percent change from prev to curr. A zero previous
// window reports 0 rather than an infinite growth figure.
func growthPercent(prev, curr int64) float64 {
	if prev == 0 {
		return 0
	}
	return float64(curr-prev) / float64(prev) * 100
}

// relativeAge renders how long ago date was, relative to today
func relativeAge(date string, today time.Time) string {
	d, err := time.ParseInLocation(dateLayout, date, today.Location())
	if err != nil {
		return date
	}
	days := int(today.Sub(d).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 60:
		return "1 month ago"
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}
