package service

import (
	"context"
	"testing"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingService(db *gorm.DB) BookingService {
	return NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func seedBookingFixture(t *testing.T, db *gorm.DB) (model.Spa, model.Service, model.Staff) {
	t.Helper()
	spa := model.Spa{Name: "Lotus Spa", Slug: "lotus", Currency: "AED"}
	require.NoError(t, db.Create(&spa).Error)

	svc := model.Service{SpaID: spa.ID, Name: "Swedish Massage", Price: dec(t, "105.00"), TaxCode: model.TaxCodeStandard, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	staff := model.Staff{SpaID: spa.ID, DisplayName: "Amira", Active: true}
	require.NoError(t, db.Create(&staff).Error)

	return spa, svc, staff
}

func TestCreateBookingSplitsTaxPerItem(t *testing.T) {
	db := newTestDB(t)
	spa, svc, staff := seedBookingFixture(t, db)
	bookings := newBookingService(db)

	resp, err := bookings.CreateBooking(context.Background(), CreateBookingRequest{
		SpaID:        spa.ID.String(),
		CustomerName: "Sara",
		BookingDate:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		Items: []CreateBookingItemRequest{
			{ServiceID: svc.ID.String(), StaffID: staff.ID.String()},
		},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, model.BookingPending, resp.Status)
	assert.Equal(t, "105.00", resp.Total)
	assert.Equal(t, "AED 105.00", resp.TotalFmt)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "105.00", resp.Items[0].Price)
	assert.Equal(t, "100.00", resp.Items[0].NetAmount)
	assert.Equal(t, "5.00", resp.Items[0].VATAmount)
	assert.Equal(t, model.TaxCodeStandard, resp.Items[0].TaxCode)

	// The stored row satisfies net + vat == price.
	var item model.BookingItem
	require.NoError(t, db.First(&item).Error)
	require.NotNil(t, item.NetAmount)
	require.NotNil(t, item.VATAmount)
	assert.True(t, item.NetAmount.Add(*item.VATAmount).Equal(item.Price))
}

func TestCreateBookingRejectsForeignService(t *testing.T) {
	db := newTestDB(t)
	spa, _, _ := seedBookingFixture(t, db)

	other := model.Spa{Name: "Oasis Spa", Slug: "oasis", Currency: "AED"}
	require.NoError(t, db.Create(&other).Error)
	foreign := model.Service{SpaID: other.ID, Name: "Facial", Price: dec(t, "80.00"), TaxCode: model.TaxCodeStandard, Active: true}
	require.NoError(t, db.Create(&foreign).Error)

	bookings := newBookingService(db)
	_, err := bookings.CreateBooking(context.Background(), CreateBookingRequest{
		SpaID:        spa.ID.String(),
		CustomerName: "Sara",
		BookingDate:  time.Now().Format(time.RFC3339),
		Items:        []CreateBookingItemRequest{{ServiceID: foreign.ID.String()}},
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to this spa")
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	spa, svc, _ := seedBookingFixture(t, db)
	bookings := newBookingService(db)

	created, err := bookings.CreateBooking(context.Background(), CreateBookingRequest{
		SpaID:        spa.ID.String(),
		CustomerName: "Sara",
		BookingDate:  time.Now().Format(time.RFC3339),
		Items:        []CreateBookingItemRequest{{ServiceID: svc.ID.String()}},
	}, "")
	require.NoError(t, err)

	confirmed, err := bookings.UpdateStatus(context.Background(), created.ID, model.BookingConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, confirmed.Status)

	completed, err := bookings.UpdateStatus(context.Background(), created.ID, model.BookingCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, completed.Status)

	// Completed bookings are terminal.
	_, err = bookings.UpdateStatus(context.Background(), created.ID, model.BookingPending, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition booking")
}

func TestListBookingsFilters(t *testing.T) {
	db := newTestDB(t)
	spa, svc, _ := seedBookingFixture(t, db)
	bookings := newBookingService(db)

	for _, day := range []string{"2025-03-10", "2025-03-20", "2025-04-02"} {
		when, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		_, err = bookings.CreateBooking(context.Background(), CreateBookingRequest{
			SpaID:        spa.ID.String(),
			CustomerName: "Walk-in",
			BookingDate:  when.Format(time.RFC3339),
			Items:        []CreateBookingItemRequest{{ServiceID: svc.ID.String()}},
		}, "")
		require.NoError(t, err)
	}

	list, total, err := bookings.ListBookings(context.Background(), BookingFilter{
		SpaID:    spa.ID.String(),
		DateFrom: "2025-03-01",
		DateTo:   "2025-03-31",
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	_, total, err = bookings.ListBookings(context.Background(), BookingFilter{
		Status: model.BookingPending,
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
