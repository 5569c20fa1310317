package service

import (
	"context"
	"time"

	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
)

// ReportService builds aggregate reports over an arbitrary date range
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// ItemSalesRow is one catalog item in the report breakdown
type ItemSalesRow struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// PeriodReport aggregates ledger activity over a closed date range
type PeriodReport struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	Revenue       float64        `json:"revenue"`
	ClientsServed int64          `json:"clients_served"`
	ServicesSold  int64          `json:"services_sold"`
	ProductsSold  int64          `json:"products_sold"`
	Appointments  int64          `json:"appointments"`
	ServiceSales  []ItemSalesRow `json:"service_sales"`
	ProductSales  []ItemSalesRow `json:"product_sales"`
}

// GetPeriodReport builds the report for the inclusive range [from, to].
// Dates use the 2006-01-02 layout; an empty range defaults to the current day.
func (s *ReportService) GetPeriodReport(ctx context.Context, from, to string) (*PeriodReport, error) {
	today := startOfDay(s.now())
	fromDay, toDay := today, today

	var fieldErrors []apperror.FieldError
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, today.Location())
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "from", Message: "must be a date in YYYY-MM-DD format",
			})
		} else {
			fromDay = d
		}
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, today.Location())
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "to", Message: "must be a date in YYYY-MM-DD format",
			})
		} else {
			toDay = d
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if toDay.Before(fromDay) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "must not be before from"},
		})
	}

	start := fromDay
	end := toDay.AddDate(0, 0, 1)

	revenue, err := s.analyticsRepo.RevenueBetween(ctx, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	clients, err := s.analyticsRepo.ClientsServedBetween(ctx, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	servicesSold, err := s.analyticsRepo.UnitsSoldBetween(ctx, enum.ItemTypeService, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	productsSold, err := s.analyticsRepo.UnitsSoldBetween(ctx, enum.ItemTypeProduct, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	appointments, err := s.analyticsRepo.AppointmentCountBetween(ctx,
		fromDay.Format(dateLayout), toDay.Format(dateLayout))
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	serviceSales, err := s.analyticsRepo.ItemSales(ctx, enum.ItemTypeService, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}
	productSales, err := s.analyticsRepo.ItemSales(ctx, enum.ItemTypeProduct, start, end)
	if err != nil {
		return nil, apperror.NewReportError(err)
	}

	return &PeriodReport{
		From:          fromDay.Format(dateLayout),
		To:            toDay.Format(dateLayout),
		Revenue:       centsToAmount(revenue),
		ClientsServed: clients,
		ServicesSold:  servicesSold,
		ProductsSold:  productsSold,
		Appointments:  appointments,
		ServiceSales:  toSalesRows(serviceSales),
		ProductSales:  toSalesRows(productSales),
	}, nil
}

func toSalesRows(results []repository.ItemSalesResult) []ItemSalesRow {
	rows := make([]ItemSalesRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ItemSalesRow{
			ItemID:    r.ItemID.String(),
			Name:      r.Name,
			UnitsSold: r.UnitsSold,
			Revenue:   centsToAmount(r.Revenue),
		})
	}
	return rows
}
