package repository

import (
	"context"
	"time"

	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	domainRepo "github.com/salonhq/salon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// RevenueBetween sums line subtotals (cents) of invoices created in [from, to)
func (r *analyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(l.subtotal), 0)
		FROM invoice_lines l
		JOIN invoices i ON i.id = l.invoice_id
		WHERE i.created_at >= ? AND i.created_at < ?
	`, from, to).Scan(&revenue).Error

	return revenue, err
}

// ClientsServedBetween counts distinct clients billed in [from, to)
func (r *analyticsRepository) ClientsServedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT client_id)
		FROM invoices
		WHERE created_at >= ? AND created_at < ?
	`, from, to).Scan(&count).Error

	return count, err
}

// UnitsSoldBetween sums line quantities of one item type in [from, to)
func (r *analyticsRepository) UnitsSoldBetween(ctx context.Context, itemType enum.ItemType, from, to time.Time) (int64, error) {
	var units int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(l.quantity), 0)
		FROM invoice_lines l
		JOIN invoices i ON i.id = l.invoice_id
		WHERE l.item_type = ? AND i.created_at >= ? AND i.created_at < ?
	`, itemType, from, to).Scan(&units).Error

	return units, err
}

// AppointmentSummary counts the day's non-canceled appointments by state
func (r *analyticsRepository) AppointmentSummary(ctx context.Context, date string) (*domainRepo.AppointmentSummaryResult, error) {
	var result domainRepo.AppointmentSummaryResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN state = ? THEN 1 ELSE 0 END), 0) AS collected,
			COALESCE(SUM(CASE WHEN state = ? THEN 1 ELSE 0 END), 0) AS pending
		FROM appointments
		WHERE date = ? AND state <> ?
	`, enum.AppointmentCollected, enum.AppointmentPending, date, enum.AppointmentCanceled).
		Scan(&result).Error

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AppointmentCountBetween counts non-canceled appointments in a date range
// (inclusive on both ends)
func (r *analyticsRepository) AppointmentCountBetween(ctx context.Context, startDate, endDate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM appointments
		WHERE date >= ? AND date <= ? AND state <> ?
	`, startDate, endDate, enum.AppointmentCanceled).Scan(&count).Error

	return count, err
}

// UpcomingAppointments returns the day's not-yet-collected appointments from
// fromTime onward, soonest first. The filter is state <> collected, so
// canceled visits still show on the strip; hiding them would change the
// register's long-standing behavior.
func (r *analyticsRepository) UpcomingAppointments(ctx context.Context, date, fromTime string, limit int) ([]domainRepo.UpcomingAppointmentResult, error) {
	var results []domainRepo.UpcomingAppointmentResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id, c.name AS client_name, s.name AS service_name, a.time, a.state
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN services s ON s.id = a.service_id
		WHERE a.date = ? AND a.state <> ? AND a.time >= ?
		ORDER BY a.time ASC
		LIMIT ?
	`, date, enum.AppointmentCollected, fromTime, limit).Scan(&results).Error

	return results, err
}

// OverduePendingAppointments returns pending appointments dated strictly
// before beforeDate, with the service price as the outstanding amount
func (r *analyticsRepository) OverduePendingAppointments(ctx context.Context, beforeDate string) ([]domainRepo.OverdueAppointmentResult, error) {
	var results []domainRepo.OverdueAppointmentResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id, c.name AS client_name, s.price AS amount, a.date
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN services s ON s.id = a.service_id
		WHERE a.state = ? AND a.date < ?
		ORDER BY a.date ASC
	`, enum.AppointmentPending, beforeDate).Scan(&results).Error

	return results, err
}

// LowStockProducts returns products with stock strictly below threshold
func (r *analyticsRepository) LowStockProducts(ctx context.Context, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

// ItemSales groups invoice lines of one item type by the referenced catalog
// item and sums units and revenue over [from, to)
func (r *analyticsRepository) ItemSales(ctx context.Context, itemType enum.ItemType, from, to time.Time) ([]domainRepo.ItemSalesResult, error) {
	itemTable := "services"
	if itemType == enum.ItemTypeProduct {
		itemTable = "products"
	}

	var results []domainRepo.ItemSalesResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id AS item_id,
			t.name AS name,
			COALESCE(SUM(l.quantity), 0) AS units_sold,
			COALESCE(SUM(l.subtotal), 0) AS revenue
		FROM invoice_lines l
		JOIN `+itemTable+` t ON t.id = l.item_id
		JOIN invoices i ON i.id = l.invoice_id
		WHERE l.item_type = ? AND i.created_at >= ? AND i.created_at < ?
		GROUP BY t.id, t.name
		ORDER BY revenue DESC
	`, itemType, from, to).Scan(&results).Error

	return results, err
}
