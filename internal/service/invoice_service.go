package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type IssueInvoiceRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Note      string `json:"note"`
}

type InvoiceResponse struct {
	ID          string `json:"id"`
	SpaID       string `json:"spa_id"`
	InvoiceNo   string `json:"invoice_no"`
	BookingID   *string `json:"booking_id"`
	IssueDate   string `json:"issue_date"`
	NetAmount   string `json:"net_amount"`
	VATAmount   string `json:"vat_amount"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
	Note        string `json:"note"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	IssueForBooking(ctx context.Context, req IssueInvoiceRequest, userID string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, spaID, status string, page, limit int) ([]InvoiceResponse, int64, error)
	VoidInvoice(ctx context.Context, id, userID string) (InvoiceResponse, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	bookingRepo repository.BookingRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	bookingRepo repository.BookingRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

// IssueForBooking raises a tax invoice for a completed booking, summing the
// already-split line amounts. Numbering is SPA-YYYY-NNNN per calendar year.
func (s *invoiceService) IssueForBooking(ctx context.Context, req IssueInvoiceRequest, userID string) (InvoiceResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, fmt.Errorf("booking not found")
		}
		return InvoiceResponse{}, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.Status != model.BookingCompleted {
		return InvoiceResponse{}, fmt.Errorf("cannot invoice a booking in status %s", booking.Status)
	}

	net, vat, total := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range booking.Items {
		total = total.Add(item.Price)
		if item.NetAmount != nil {
			net = net.Add(*item.NetAmount)
		}
		if item.VATAmount != nil {
			vat = vat.Add(*item.VATAmount)
		}
	}

	now := time.Now()
	invoice := model.Invoice{
		SpaID:       booking.SpaID,
		BookingID:   &bookingID,
		IssueDate:   now,
		NetAmount:   net,
		VATAmount:   vat,
		TotalAmount: total,
		Status:      model.InvoiceIssued,
		Note:        req.Note,
	}

	if err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		prefix := fmt.Sprintf("SPA-%d-", now.Year())
		seq, err := s.invoiceRepo.CountByPrefix(txCtx, prefix)
		if err != nil {
			return err
		}
		invoice.InvoiceNo = fmt.Sprintf("%s%04d", prefix, seq+1)
		return s.invoiceRepo.Create(txCtx, &invoice)
	}); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to issue invoice: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionIssueInvoice, invoice.ID.String(), invoice.InvoiceNo, req)

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, spaID, status string, page, limit int) ([]InvoiceResponse, int64, error) {
	var spaFilter *uuid.UUID
	if spaID != "" {
		parsed, err := uuid.Parse(spaID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid spa id: %w", err)
		}
		spaFilter = &parsed
	}

	invoices, total, err := s.invoiceRepo.List(ctx, spaFilter, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, toInvoiceResponse(inv))
	}
	return res, total, nil
}

func (s *invoiceService) VoidInvoice(ctx context.Context, id, userID string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, fmt.Errorf("invoice not found")
		}
		return InvoiceResponse{}, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if invoice.Status == model.InvoiceVoided {
		return InvoiceResponse{}, fmt.Errorf("invoice %s is already voided", invoice.InvoiceNo)
	}

	invoice.Status = model.InvoiceVoided
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to void invoice: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionVoidInvoice, invoice.ID.String(), invoice.InvoiceNo, map[string]string{"voided_id": id})

	return toInvoiceResponse(*invoice), nil
}

// --- Helpers ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID.String(),
		SpaID:       inv.SpaID.String(),
		InvoiceNo:   inv.InvoiceNo,
		IssueDate:   inv.IssueDate.Format(time.RFC3339),
		NetAmount:   inv.NetAmount.StringFixed(2),
		VATAmount:   inv.VATAmount.StringFixed(2),
		TotalAmount: inv.TotalAmount.StringFixed(2),
		Status:      inv.Status,
		Note:        inv.Note,
		CreatedAt:   inv.CreatedAt.Format(time.RFC3339),
	}
	if inv.BookingID != nil {
		bid := inv.BookingID.String()
		resp.BookingID = &bid
	}
	return resp
}

