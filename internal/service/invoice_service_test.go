package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvoiceService(db *gorm.DB) InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewBookingRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func seedCompletedBooking(t *testing.T, db *gorm.DB, status string) model.Booking {
	t.Helper()
	spa := model.Spa{Name: "Lotus Spa", Slug: "lotus-" + status, Currency: "AED"}
	require.NoError(t, db.Create(&spa).Error)

	svc := model.Service{SpaID: spa.ID, Name: "Swedish Massage", Price: dec(t, "105.00"), TaxCode: model.TaxCodeStandard, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	booking := model.Booking{
		SpaID: spa.ID, CustomerName: "Sara", BookingDate: date(2025, time.March, 10), Status: status,
		Items: []model.BookingItem{
			{ServiceID: svc.ID, Price: dec(t, "105.00"), NetAmount: decPtr(t, "100.00"), VATAmount: decPtr(t, "5.00"), TaxCode: model.TaxCodeStandard},
			{ServiceID: svc.ID, Price: dec(t, "105.00"), NetAmount: decPtr(t, "100.00"), VATAmount: decPtr(t, "5.00"), TaxCode: model.TaxCodeStandard},
		},
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestIssueInvoiceForCompletedBooking(t *testing.T) {
	db := newTestDB(t)
	booking := seedCompletedBooking(t, db, model.BookingCompleted)
	invoices := newInvoiceService(db)

	resp, err := invoices.IssueForBooking(context.Background(), IssueInvoiceRequest{BookingID: booking.ID.String()}, "")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SPA-%d-0001", time.Now().Year()), resp.InvoiceNo)
	assert.Equal(t, "200.00", resp.NetAmount)
	assert.Equal(t, "10.00", resp.VATAmount)
	assert.Equal(t, "210.00", resp.TotalAmount)
	assert.Equal(t, model.InvoiceIssued, resp.Status)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, booking.ID.String(), *resp.BookingID)
}

func TestIssueInvoiceNumbersSequentially(t *testing.T) {
	db := newTestDB(t)
	first := seedCompletedBooking(t, db, model.BookingCompleted)
	invoices := newInvoiceService(db)

	second := model.Booking{
		SpaID: first.SpaID, CustomerName: "Hind", BookingDate: date(2025, time.March, 11), Status: model.BookingCompleted,
		Items: []model.BookingItem{
			{ServiceID: first.Items[0].ServiceID, Price: dec(t, "105.00"), NetAmount: decPtr(t, "100.00"), VATAmount: decPtr(t, "5.00"), TaxCode: model.TaxCodeStandard},
		},
	}
	require.NoError(t, db.Create(&second).Error)

	year := time.Now().Year()
	one, err := invoices.IssueForBooking(context.Background(), IssueInvoiceRequest{BookingID: first.ID.String()}, "")
	require.NoError(t, err)
	two, err := invoices.IssueForBooking(context.Background(), IssueInvoiceRequest{BookingID: second.ID.String()}, "")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SPA-%d-0001", year), one.InvoiceNo)
	assert.Equal(t, fmt.Sprintf("SPA-%d-0002", year), two.InvoiceNo)
}

func TestIssueInvoiceRejectsPendingBooking(t *testing.T) {
	db := newTestDB(t)
	booking := seedCompletedBooking(t, db, model.BookingPending)
	invoices := newInvoiceService(db)

	_, err := invoices.IssueForBooking(context.Background(), IssueInvoiceRequest{BookingID: booking.ID.String()}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot invoice a booking in status PENDING")
}

func TestVoidInvoiceDropsOutOfThresholdRevenue(t *testing.T) {
	db := newTestDB(t)
	booking := seedCompletedBooking(t, db, model.BookingCompleted)
	invoices := newInvoiceService(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	issued, err := invoices.IssueForBooking(context.Background(), IssueInvoiceRequest{BookingID: booking.ID.String()}, "")
	require.NoError(t, err)

	live, err := invoiceRepo.ListBySpa(context.Background(), booking.SpaID)
	require.NoError(t, err)
	require.Len(t, live, 1)

	voided, err := invoices.VoidInvoice(context.Background(), issued.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceVoided, voided.Status)

	live, err = invoiceRepo.ListBySpa(context.Background(), booking.SpaID)
	require.NoError(t, err)
	assert.Empty(t, live)

	// Voiding twice is rejected.
	_, err = invoices.VoidInvoice(context.Background(), issued.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already voided")
}
