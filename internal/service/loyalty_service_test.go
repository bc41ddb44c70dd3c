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

func newLoyaltyService(db *gorm.DB) LoyaltyService {
	return NewLoyaltyService(
		repository.NewLoyaltyRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewAuditRepository(db),
	)
}

func seedLoyaltyFixture(t *testing.T, db *gorm.DB, taxCode string) model.Service {
	t.Helper()
	spa := model.Spa{Name: "Lotus Spa", Slug: "lotus", Currency: "AED"}
	require.NoError(t, db.Create(&spa).Error)

	svc := model.Service{SpaID: spa.ID, Name: "Swedish Massage", Price: dec(t, "105.00"), TaxCode: taxCode, Active: true}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func TestPurchaseCardSplitsBundlePrice(t *testing.T) {
	db := newTestDB(t)
	svc := seedLoyaltyFixture(t, db, model.TaxCodeStandard)
	loyalty := newLoyaltyService(db)

	// A 10-session bundle sold below list price; VAT comes out of the
	// discounted amount, not the per-session list price.
	resp, err := loyalty.PurchaseCard(context.Background(), PurchaseLoyaltyCardRequest{
		ServiceID:     svc.ID.String(),
		CustomerName:  "Sara",
		SessionsTotal: 10,
		PurchasePrice: "500.00",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "500.00", resp.PurchasePrice)
	assert.Equal(t, "476.19", resp.NetAmount)
	assert.Equal(t, "23.81", resp.VATAmount)
	assert.Equal(t, model.TaxCodeStandard, resp.TaxCode)
	assert.Equal(t, 10, resp.SessionsTotal)
	assert.Equal(t, 0, resp.SessionsUsed)
}

func TestPurchaseCardZeroRatedService(t *testing.T) {
	db := newTestDB(t)
	svc := seedLoyaltyFixture(t, db, model.TaxCodeZeroRated)
	loyalty := newLoyaltyService(db)

	resp, err := loyalty.PurchaseCard(context.Background(), PurchaseLoyaltyCardRequest{
		ServiceID:     svc.ID.String(),
		CustomerName:  "Sara",
		SessionsTotal: 5,
		PurchasePrice: "300.00",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "300.00", resp.NetAmount)
	assert.Equal(t, "0.00", resp.VATAmount)
}

func TestRedeemSessionUntilExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := seedLoyaltyFixture(t, db, model.TaxCodeStandard)
	loyalty := newLoyaltyService(db)

	card, err := loyalty.PurchaseCard(context.Background(), PurchaseLoyaltyCardRequest{
		ServiceID:     svc.ID.String(),
		CustomerName:  "Sara",
		SessionsTotal: 2,
		PurchasePrice: "100.00",
	}, "")
	require.NoError(t, err)

	first, err := loyalty.RedeemSession(context.Background(), card.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.SessionsUsed)

	second, err := loyalty.RedeemSession(context.Background(), card.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.SessionsUsed)

	_, err = loyalty.RedeemSession(context.Background(), card.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fully redeemed")
}
