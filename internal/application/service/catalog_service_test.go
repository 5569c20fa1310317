package service

import (
	"context"
	"testing"

	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/salonhq/salon-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewServiceRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestCreateService_PriceStoredInCents(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCatalogService(db)

	created, err := svc.CreateService(context.Background(), &CreateServiceInput{
		Name:            "Haircut",
		Price:           49.90,
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4990), created.Price)
	assert.InDelta(t, 49.90, created.GetPriceDecimal(), 0.001)
	assert.Equal(t, int64(0), created.RealizedCount)
}

func TestCreateService_NegativePrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCatalogService(db)

	_, err := svc.CreateService(context.Background(), &CreateServiceInput{
		Name:  "Haircut",
		Price: -1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateProduct_Restock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCatalogService(db)
	product := seedProduct(t, db, "Shampoo", 1500, 2)

	stock := 10
	updated, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)

	negative := -1
	_, err = svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{Stock: &negative})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGetLowStockProducts_StrictThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCatalogService(db)

	seedProduct(t, db, "Shampoo", 1500, 3)
	seedProduct(t, db, "Conditioner", 1800, 5)
	seedProduct(t, db, "Hair Spray", 2200, 6)

	products, err := svc.GetLowStockProducts(context.Background(), 5)
	require.NoError(t, err)

	// Strictly below the threshold: stock 5 does not alert.
	require.Len(t, products, 1)
	assert.Equal(t, "Shampoo", products[0].Name)
}
