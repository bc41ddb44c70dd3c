package service

import (
	"context"
	"testing"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB) SaleService {
	return NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func seedSaleFixture(t *testing.T, db *gorm.DB, stock int) (model.Staff, model.Product) {
	t.Helper()
	spa := model.Spa{Name: "Lotus Spa", Slug: "lotus", Currency: "AED"}
	require.NoError(t, db.Create(&spa).Error)

	staff := model.Staff{SpaID: spa.ID, DisplayName: "Amira", Active: true}
	require.NoError(t, db.Create(&staff).Error)

	product := model.Product{SKU: "OIL-01", Name: "Massage Oil", RetailPrice: dec(t, "26.25"), StockQty: stock, TaxCode: model.TaxCodeStandard}
	require.NoError(t, db.Create(&product).Error)

	return staff, product
}

func TestRecordSaleSplitsTaxAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	staff, product := seedSaleFixture(t, db, 5)
	sales := newSaleService(db)

	resp, err := sales.RecordSale(context.Background(), RecordSaleRequest{
		ProductID: product.ID.String(),
		SoldBy:    staff.ID.String(),
		Quantity:  2,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, "52.50", resp.TotalPrice)
	assert.Equal(t, "50.00", resp.NetAmount)
	assert.Equal(t, "2.50", resp.VATAmount)
	assert.Equal(t, model.TaxCodeStandard, resp.TaxCode)
	assert.Equal(t, "Massage Oil", resp.ProductName)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.StockQty)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	staff, product := seedSaleFixture(t, db, 1)
	sales := newSaleService(db)

	_, err := sales.RecordSale(context.Background(), RecordSaleRequest{
		ProductID: product.ID.String(),
		SoldBy:    staff.ID.String(),
		Quantity:  3,
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// The failed transaction leaves neither a sale row nor a stock change.
	var count int64
	require.NoError(t, db.Model(&model.ProductSale{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 1, reloaded.StockQty)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	staff, _ := seedSaleFixture(t, db, 1)
	sales := newSaleService(db)

	_, err := sales.RecordSale(context.Background(), RecordSaleRequest{
		ProductID: "11111111-1111-1111-1111-111111111111",
		SoldBy:    staff.ID.String(),
		Quantity:  1,
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}
