package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
)

// AppointmentSummaryResult counts a day's non-canceled appointments by state
type AppointmentSummaryResult struct {
	Total     int64 `json:"total"`
	Collected int64 `json:"collected"`
	Pending   int64 `json:"pending"`
}

// UpcomingAppointmentResult is one row of the dashboard's upcoming strip
type UpcomingAppointmentResult struct {
	ID          uuid.UUID             `json:"id"`
	ClientName  string                `json:"client_name"`
	ServiceName string                `json:"service_name"`
	Time        string                `json:"time"`
	State       enum.AppointmentState `json:"state"`
}

// OverdueAppointmentResult is a pending appointment dated before today
type OverdueAppointmentResult struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	Amount     int64     `json:"-"` // cents
	Date       string    `json:"date"`
}

// ItemSalesResult aggregates invoice lines for one catalog item
type ItemSalesResult struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   int64     `json:"-"` // cents
}

// AnalyticsRepository provides read-only time-windowed aggregates over the
// invoice ledger and the appointment table
type AnalyticsRepository interface {
	RevenueBetween(ctx context.Context, from, to time.Time) (int64, error)
	ClientsServedBetween(ctx context.Context, from, to time.Time) (int64, error)
	UnitsSoldBetween(ctx context.Context, itemType enum.ItemType, from, to time.Time) (int64, error)
	AppointmentSummary(ctx context.Context, date string) (*AppointmentSummaryResult, error)
	AppointmentCountBetween(ctx context.Context, startDate, endDate string) (int64, error)
	UpcomingAppointments(ctx context.Context, date, fromTime string, limit int) ([]UpcomingAppointmentResult, error)
	OverduePendingAppointments(ctx context.Context, beforeDate string) ([]OverdueAppointmentResult, error)
	LowStockProducts(ctx context.Context, threshold int) ([]entity.Product, error)
	ItemSales(ctx context.Context, itemType enum.ItemType, from, to time.Time) ([]ItemSalesResult, error)
}
