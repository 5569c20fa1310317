package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database limited to one connection so
// concurrent transactions serialize the way row locks do in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.Service{},
		&entity.Product{},
		&entity.Appointment{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.IdempotencyKey{},
	))

	return db
}

func newTestBillingService(db *gorm.DB) *BillingService {
	return NewBillingService(
		repository.NewUnitOfWork(db),
		repository.NewInvoiceRepository(db),
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
		repository.NewServiceRepository(db),
		repository.NewAppointmentRepository(db),
	)
}

func seedClient(t *testing.T, db *gorm.DB, name string) *entity.Client {
	t.Helper()
	client := &entity.Client{Name: name}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedService(t *testing.T, db *gorm.DB, name string, priceCents int64) *entity.Service {
	t.Helper()
	svc := &entity.Service{Name: name, Price: priceCents, DurationMinutes: 30}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func seedProduct(t *testing.T, db *gorm.DB, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{Name: name, Price: priceCents, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedAppointment(t *testing.T, db *gorm.DB, clientID, serviceID uuid.UUID, date, timeOfDay string, state enum.AppointmentState) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		ClientID:  clientID,
		ServiceID: serviceID,
		Date:      date,
		Time:      timeOfDay,
		State:     state,
	}
	require.NoError(t, db.Create(appointment).Error)
	return appointment
}

func seedInvoice(t *testing.T, db *gorm.DB, clientID uuid.UUID, createdAt time.Time, lines ...entity.InvoiceLine) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		ClientID:      clientID,
		State:         enum.InvoiceCollected,
		PaymentMethod: "cash",
		CreatedAt:     createdAt,
		Lines:         lines,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func productLine(productID uuid.UUID, quantity int, unitPriceCents int64) entity.InvoiceLine {
	return entity.InvoiceLine{
		ItemType:  enum.ItemTypeProduct,
		ItemID:    productID,
		Quantity:  quantity,
		UnitPrice: unitPriceCents,
		Subtotal:  int64(quantity) * unitPriceCents,
	}
}

func serviceLine(serviceID uuid.UUID, quantity int, unitPriceCents int64) entity.InvoiceLine {
	return entity.InvoiceLine{
		ItemType:  enum.ItemTypeService,
		ItemID:    serviceID,
		Quantity:  quantity,
		UnitPrice: unitPriceCents,
		Subtotal:  int64(quantity) * unitPriceCents,
	}
}
