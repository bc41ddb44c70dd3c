package service

import (
	"context"
	"testing"
	"time"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// reportFixture seeds two spas with activity across all three revenue
// streams. Spa one: two booking items (SR 105.00 and ZR 200.00), one product
// sale (SR 52.50) and one loyalty card (SR 500.00), all dated March 2025.
// Spa two: one booking item (SR 210.00, March 2025) and one product sale
// (SR 31.50) back in January 2024.
type reportFixture struct {
	spa1, spa2 model.Spa
}

func seedReportData(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()
	ctx := context.Background()

	spa1 := model.Spa{Name: "Lotus Spa", Slug: "lotus", Currency: "AED"}
	spa2 := model.Spa{Name: "Oasis Spa", Slug: "oasis", Currency: "AED"}
	require.NoError(t, db.WithContext(ctx).Create(&spa1).Error)
	require.NoError(t, db.WithContext(ctx).Create(&spa2).Error)

	svcSR1 := model.Service{SpaID: spa1.ID, Name: "Deep Tissue Massage", Price: dec(t, "105.00"), TaxCode: model.TaxCodeStandard, Active: true}
	svcZR1 := model.Service{SpaID: spa1.ID, Name: "Medical Therapy", Price: dec(t, "200.00"), TaxCode: model.TaxCodeZeroRated, Active: true}
	svcSR2 := model.Service{SpaID: spa2.ID, Name: "Hot Stone Massage", Price: dec(t, "210.00"), TaxCode: model.TaxCodeStandard, Active: true}
	require.NoError(t, db.Create(&svcSR1).Error)
	require.NoError(t, db.Create(&svcZR1).Error)
	require.NoError(t, db.Create(&svcSR2).Error)

	staff1 := model.Staff{SpaID: spa1.ID, DisplayName: "Amira", Active: true}
	staff2 := model.Staff{SpaID: spa2.ID, DisplayName: "Lina", Active: true}
	require.NoError(t, db.Create(&staff1).Error)
	require.NoError(t, db.Create(&staff2).Error)

	product := model.Product{SKU: "OIL-01", Name: "Massage Oil", RetailPrice: dec(t, "26.25"), StockQty: 100, TaxCode: model.TaxCodeStandard}
	require.NoError(t, db.Create(&product).Error)

	b1 := model.Booking{
		SpaID: spa1.ID, CustomerName: "Sara", BookingDate: date(2025, time.March, 10), Status: model.BookingCompleted,
		Items: []model.BookingItem{
			{ServiceID: svcSR1.ID, Price: dec(t, "105.00"), NetAmount: decPtr(t, "100.00"), VATAmount: decPtr(t, "5.00"), TaxCode: model.TaxCodeStandard},
			{ServiceID: svcZR1.ID, Price: dec(t, "200.00"), NetAmount: decPtr(t, "200.00"), VATAmount: decPtr(t, "0.00"), TaxCode: model.TaxCodeZeroRated},
		},
	}
	b2 := model.Booking{
		SpaID: spa2.ID, CustomerName: "Hind", BookingDate: date(2025, time.March, 12), Status: model.BookingCompleted,
		Items: []model.BookingItem{
			{ServiceID: svcSR2.ID, Price: dec(t, "210.00"), NetAmount: decPtr(t, "200.00"), VATAmount: decPtr(t, "10.00"), TaxCode: model.TaxCodeStandard},
		},
	}
	require.NoError(t, db.Create(&b1).Error)
	require.NoError(t, db.Create(&b2).Error)

	sale1 := model.ProductSale{
		ProductID: product.ID, SoldBy: staff1.ID, SaleDate: date(2025, time.March, 15), Quantity: 2,
		TotalPrice: dec(t, "52.50"), NetAmount: decPtr(t, "50.00"), VATAmount: decPtr(t, "2.50"), TaxCode: model.TaxCodeStandard,
	}
	sale2 := model.ProductSale{
		ProductID: product.ID, SoldBy: staff2.ID, SaleDate: date(2024, time.January, 5), Quantity: 1,
		TotalPrice: dec(t, "31.50"), NetAmount: decPtr(t, "30.00"), VATAmount: decPtr(t, "1.50"), TaxCode: model.TaxCodeStandard,
	}
	require.NoError(t, db.Create(&sale1).Error)
	require.NoError(t, db.Create(&sale2).Error)

	card := model.LoyaltyCard{
		ServiceID: svcSR1.ID, CustomerName: "Sara", PurchaseDate: date(2025, time.March, 20),
		PurchasePrice: dec(t, "500.00"), NetAmount: decPtr(t, "476.19"), VATAmount: decPtr(t, "23.81"),
		TaxCode: model.TaxCodeStandard, SessionsTotal: 6,
	}
	require.NoError(t, db.Create(&card).Error)

	return reportFixture{spa1: spa1, spa2: spa2}
}

func findCode(t *testing.T, rows []TaxCodeTotal, code string) TaxCodeTotal {
	t.Helper()
	for _, r := range rows {
		if r.TaxCode == code {
			return r
		}
	}
	t.Fatalf("tax code %s missing from breakdown", code)
	return TaxCodeTotal{}
}

func TestGenerateReportPlatformWide(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)
	svc := NewVATReportService(db)

	result, err := svc.GenerateReport(context.Background(), VATReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, "All time", result.PeriodStart)
	assert.Equal(t, "All time", result.PeriodEnd)

	assert.Equal(t, int64(3), result.Bookings.Count)
	assert.Equal(t, "500.00", result.Bookings.NetAmount)
	assert.Equal(t, "15.00", result.Bookings.VATAmount)
	assert.Equal(t, "515.00", result.Bookings.GrossAmount)

	assert.Equal(t, int64(2), result.ProductSales.Count)
	assert.Equal(t, "80.00", result.ProductSales.NetAmount)
	assert.Equal(t, "4.00", result.ProductSales.VATAmount)
	assert.Equal(t, "84.00", result.ProductSales.GrossAmount)

	assert.Equal(t, int64(1), result.LoyaltyCards.Count)
	assert.Equal(t, "476.19", result.LoyaltyCards.NetAmount)
	assert.Equal(t, "23.81", result.LoyaltyCards.VATAmount)
	assert.Equal(t, "500.00", result.LoyaltyCards.GrossAmount)

	assert.Equal(t, int64(6), result.Overall.Count)
	assert.Equal(t, "1056.19", result.Overall.NetAmount)
	assert.Equal(t, "42.81", result.Overall.VATAmount)
	assert.Equal(t, "1099.00", result.Overall.GrossAmount)
}

func TestGenerateReportBreakdownPartitionsOverall(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)
	svc := NewVATReportService(db)

	result, err := svc.GenerateReport(context.Background(), VATReportFilter{})
	require.NoError(t, err)

	require.Len(t, result.ByTaxCode, len(model.TaxCodes))
	for i, code := range model.TaxCodes {
		assert.Equal(t, code, result.ByTaxCode[i].TaxCode)
	}

	sr := findCode(t, result.ByTaxCode, model.TaxCodeStandard)
	assert.Equal(t, int64(5), sr.Count)
	assert.Equal(t, "856.19", sr.NetAmount)
	assert.Equal(t, "42.81", sr.VATAmount)
	assert.Equal(t, "899.00", sr.GrossAmount)

	zr := findCode(t, result.ByTaxCode, model.TaxCodeZeroRated)
	assert.Equal(t, int64(1), zr.Count)
	assert.Equal(t, "200.00", zr.NetAmount)
	assert.Equal(t, "0.00", zr.VATAmount)

	es := findCode(t, result.ByTaxCode, model.TaxCodeExempt)
	assert.Equal(t, int64(0), es.Count)
	assert.Equal(t, "0.00", es.GrossAmount)

	// Every row carries exactly one code, so the breakdown sums back to
	// the overall line.
	net := dec(t, "0")
	vat := dec(t, "0")
	gross := dec(t, "0")
	var count int64
	for _, row := range result.ByTaxCode {
		net = net.Add(dec(t, row.NetAmount))
		vat = vat.Add(dec(t, row.VATAmount))
		gross = gross.Add(dec(t, row.GrossAmount))
		count += row.Count
	}
	assert.Equal(t, result.Overall.NetAmount, net.StringFixed(2))
	assert.Equal(t, result.Overall.VATAmount, vat.StringFixed(2))
	assert.Equal(t, result.Overall.GrossAmount, gross.StringFixed(2))
	assert.Equal(t, result.Overall.Count, count)
}

func TestGenerateReportScopedToSpa(t *testing.T) {
	db := newTestDB(t)
	fx := seedReportData(t, db)
	svc := NewVATReportService(db)

	result, err := svc.GenerateReport(context.Background(), VATReportFilter{SpaID: &fx.spa1.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Bookings.Count)
	assert.Equal(t, "305.00", result.Bookings.GrossAmount)

	// Spa two's sale must not leak in through the staff join.
	assert.Equal(t, int64(1), result.ProductSales.Count)
	assert.Equal(t, "52.50", result.ProductSales.GrossAmount)

	assert.Equal(t, int64(1), result.LoyaltyCards.Count)
	assert.Equal(t, "857.50", result.Overall.GrossAmount)
}

func TestGenerateReportDateRange(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)
	svc := NewVATReportService(db)

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	result, err := svc.GenerateReport(context.Background(), VATReportFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", result.PeriodStart)
	assert.Equal(t, "2025-12-31", result.PeriodEnd)

	// The January 2024 sale falls outside the window.
	assert.Equal(t, int64(1), result.ProductSales.Count)
	assert.Equal(t, "52.50", result.ProductSales.GrossAmount)
	assert.Equal(t, int64(3), result.Bookings.Count)
	assert.Equal(t, int64(1), result.LoyaltyCards.Count)
}

func TestGenerateReportTaxCodeFilter(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)
	svc := NewVATReportService(db)

	result, err := svc.GenerateReport(context.Background(), VATReportFilter{TaxCode: model.TaxCodeZeroRated})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Bookings.Count)
	assert.Equal(t, "200.00", result.Bookings.GrossAmount)
	assert.Equal(t, int64(0), result.ProductSales.Count)
	assert.Equal(t, int64(0), result.LoyaltyCards.Count)
	assert.Equal(t, "200.00", result.Overall.GrossAmount)
	assert.Equal(t, "0.00", result.Overall.VATAmount)

	// The breakdown would repeat the overall line, so it stays empty.
	assert.Empty(t, result.ByTaxCode)
}

func TestGenerateReportEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewVATReportService(db)

	spaID := uuid.New()
	result, err := svc.GenerateReport(context.Background(), VATReportFilter{SpaID: &spaID})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Overall.Count)
	assert.Equal(t, "0.00", result.Overall.NetAmount)
	assert.Equal(t, "0.00", result.Overall.VATAmount)
	assert.Equal(t, "0.00", result.Overall.GrossAmount)
	require.Len(t, result.ByTaxCode, len(model.TaxCodes))
	for _, row := range result.ByTaxCode {
		assert.Equal(t, int64(0), row.Count)
		assert.Equal(t, "0.00", row.GrossAmount)
	}
}
