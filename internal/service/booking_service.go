package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"
	"spa-backend/pkg/taxmath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateBookingItemRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	StaffID   string `json:"staff_id"` // optional preferred professional
}

type CreateBookingRequest struct {
	SpaID         string                     `json:"spa_id" binding:"required"`
	CustomerName  string                     `json:"customer_name" binding:"required"`
	CustomerPhone string                     `json:"customer_phone"`
	BookingDate   string                     `json:"booking_date" binding:"required"` // RFC3339
	Note          string                     `json:"note"`
	Items         []CreateBookingItemRequest `json:"items" binding:"required,min=1"`
}

type BookingItemResponse struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name,omitempty"`
	StaffID     *string `json:"staff_id"`
	Price       string  `json:"price"`
	NetAmount   string  `json:"net_amount"`
	VATAmount   string  `json:"vat_amount"`
	TaxCode     string  `json:"tax_code"`
}

type BookingResponse struct {
	ID            string                `json:"id"`
	SpaID         string                `json:"spa_id"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	BookingDate   string                `json:"booking_date"`
	Status        string                `json:"status"`
	Note          string                `json:"note"`
	Total         string                `json:"total"`
	TotalFmt      string                `json:"total_formatted"`
	Items         []BookingItemResponse `json:"items"`
	CreatedAt     string                `json:"created_at"`
}

type BookingFilter struct {
	SpaID    string
	Status   string
	DateFrom string // YYYY-MM-DD
	DateTo   string
	Page     int
	Limit    int
}

// --- Interface ---

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID string) (BookingResponse, error)
	GetBooking(ctx context.Context, id string) (BookingResponse, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]BookingResponse, int64, error)
	UpdateStatus(ctx context.Context, id, status, userID string) (BookingResponse, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	catalogRepo repository.CatalogRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	catalogRepo repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

// CreateBooking prices every line from the service catalog and splits the
// tax-inclusive price into net and VAT at write time, so stored rows always
// satisfy net + vat == price.
func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest, userID string) (BookingResponse, error) {
	spaID, err := uuid.Parse(req.SpaID)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("invalid spa id: %w", err)
	}

	bookingDate, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("invalid booking_date (expected RFC3339): %w", err)
	}

	booking := model.Booking{
		SpaID:         spaID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		BookingDate:   bookingDate,
		Status:        model.BookingPending,
		Note:          req.Note,
	}

	for _, item := range req.Items {
		serviceID, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return BookingResponse{}, fmt.Errorf("invalid service id: %w", err)
		}

		svc, err := s.catalogRepo.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return BookingResponse{}, fmt.Errorf("service %s not found", item.ServiceID)
			}
			return BookingResponse{}, fmt.Errorf("failed to fetch service: %w", err)
		}
		if svc.SpaID != spaID {
			return BookingResponse{}, fmt.Errorf("service %s does not belong to this spa", item.ServiceID)
		}

		var staffID *uuid.UUID
		if item.StaffID != "" {
			parsed, err := uuid.Parse(item.StaffID)
			if err != nil {
				return BookingResponse{}, fmt.Errorf("invalid staff id: %w", err)
			}
			staff, err := s.catalogRepo.GetStaff(ctx, parsed)
			if err != nil {
				return BookingResponse{}, fmt.Errorf("staff %s not found", item.StaffID)
			}
			if staff.SpaID != spaID {
				return BookingResponse{}, fmt.Errorf("staff %s does not belong to this spa", item.StaffID)
			}
			staffID = &parsed
		}

		split := taxmath.CalculateTaxInclusive(svc.Price, model.RateForTaxCode(svc.TaxCode))
		booking.Items = append(booking.Items, model.BookingItem{
			ServiceID: serviceID,
			StaffID:   staffID,
			Price:     split.TotalAmount,
			NetAmount: &split.NetAmount,
			VATAmount: &split.TaxAmount,
			TaxCode:   svc.TaxCode,
		})
	}

	if err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.Create(txCtx, &booking)
	}); err != nil {
		return BookingResponse{}, fmt.Errorf("failed to create booking: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionCreateBooking, booking.ID.String(), req.CustomerName, req)

	return toBookingResponse(booking), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, fmt.Errorf("booking not found")
		}
		return BookingResponse{}, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return toBookingResponse(*booking), nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter BookingFilter) ([]BookingResponse, int64, error) {
	repoFilter := repository.BookingListFilter{
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}

	if filter.SpaID != "" {
		spaID, err := uuid.Parse(filter.SpaID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid spa id: %w", err)
		}
		repoFilter.SpaID = &spaID
	}
	if filter.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filter.DateFrom)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date_from (expected YYYY-MM-DD): %w", err)
		}
		repoFilter.DateFrom = &from
	}
	if filter.DateTo != "" {
		to, err := time.Parse("2006-01-02", filter.DateTo)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date_to (expected YYYY-MM-DD): %w", err)
		}
		end := to.Add(24*time.Hour - time.Second)
		repoFilter.DateTo = &end
	}

	bookings, total, err := s.bookingRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	res := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, toBookingResponse(b))
	}
	return res, total, nil
}

// validTransitions guards the booking lifecycle.
var validTransitions = map[string][]string{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCompleted, model.BookingCancelled},
}

func (s *bookingService) UpdateStatus(ctx context.Context, id, status, userID string) (BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return BookingResponse{}, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, fmt.Errorf("booking not found")
		}
		return BookingResponse{}, fmt.Errorf("failed to fetch booking: %w", err)
	}

	allowed := false
	for _, next := range validTransitions[booking.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return BookingResponse{}, fmt.Errorf("cannot transition booking from %s to %s", booking.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return BookingResponse{}, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = status

	action := model.ActionUpdateBooking
	if status == model.BookingCancelled {
		action = model.ActionCancelBooking
	}
	logAudit(ctx, s.auditRepo, userID, action, booking.ID.String(), booking.CustomerName, map[string]string{"status": status})

	return toBookingResponse(*booking), nil
}

// --- Helpers ---

func toBookingResponse(b model.Booking) BookingResponse {
	items := make([]BookingItemResponse, 0, len(b.Items))
	total := decimal.Zero
	for _, item := range b.Items {
		ir := BookingItemResponse{
			ID:        item.ID.String(),
			ServiceID: item.ServiceID.String(),
			Price:     item.Price.StringFixed(2),
			TaxCode:   item.TaxCode,
		}
		if item.Service != nil {
			ir.ServiceName = item.Service.Name
		}
		if item.StaffID != nil {
			sid := item.StaffID.String()
			ir.StaffID = &sid
		}
		if item.NetAmount != nil {
			ir.NetAmount = item.NetAmount.StringFixed(2)
		}
		if item.VATAmount != nil {
			ir.VATAmount = item.VATAmount.StringFixed(2)
		}
		items = append(items, ir)
		total = total.Add(item.Price)
	}

	return BookingResponse{
		ID:            b.ID.String(),
		SpaID:         b.SpaID.String(),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		BookingDate:   b.BookingDate.Format(time.RFC3339),
		Status:        b.Status,
		Note:          b.Note,
		Total:         total.StringFixed(2),
		TotalFmt:      taxmath.FormatCurrency(total, ""),
		Items:         items,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

