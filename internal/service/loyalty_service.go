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

type PurchaseLoyaltyCardRequest struct {
	ServiceID     string `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	SessionsTotal int    `json:"sessions_total" binding:"required,min=2"`
	PurchasePrice string `json:"purchase_price" binding:"required"` // tax-inclusive bundle price
	PurchaseDate  string `json:"purchase_date"`                     // RFC3339, defaults to now
}

type LoyaltyCardResponse struct {
	ID            string `json:"id"`
	ServiceID     string `json:"service_id"`
	ServiceName   string `json:"service_name,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	PurchaseDate  string `json:"purchase_date"`
	PurchasePrice string `json:"purchase_price"`
	NetAmount     string `json:"net_amount"`
	VATAmount     string `json:"vat_amount"`
	TaxCode       string `json:"tax_code"`
	SessionsTotal int    `json:"sessions_total"`
	SessionsUsed  int    `json:"sessions_used"`
}

// --- Interface ---

type LoyaltyService interface {
	PurchaseCard(ctx context.Context, req PurchaseLoyaltyCardRequest, userID string) (LoyaltyCardResponse, error)
	RedeemSession(ctx context.Context, cardID, userID string) (LoyaltyCardResponse, error)
	ListCards(ctx context.Context, spaID string, page, limit int) ([]LoyaltyCardResponse, int64, error)
}

type loyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
	catalogRepo repository.CatalogRepository
	auditRepo   repository.AuditRepository
}

func NewLoyaltyService(
	loyaltyRepo repository.LoyaltyRepository,
	catalogRepo repository.CatalogRepository,
	auditRepo repository.AuditRepository,
) LoyaltyService {
	return &loyaltyService{
		loyaltyRepo: loyaltyRepo,
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
	}
}

// --- Implementation ---

// PurchaseCard sells a prepaid session bundle. The bundle price is caller
// supplied (bundles are discounted, not a multiple of the list price) but the
// VAT split still happens here, using the underlying service's tax code.
func (s *loyaltyService) PurchaseCard(ctx context.Context, req PurchaseLoyaltyCardRequest, userID string) (LoyaltyCardResponse, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return LoyaltyCardResponse{}, fmt.Errorf("invalid service id: %w", err)
	}

	svc, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoyaltyCardResponse{}, fmt.Errorf("service not found")
		}
		return LoyaltyCardResponse{}, fmt.Errorf("failed to fetch service: %w", err)
	}

	price, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		return LoyaltyCardResponse{}, fmt.Errorf("invalid purchase_price: %w", err)
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse(time.RFC3339, req.PurchaseDate)
		if err != nil {
			return LoyaltyCardResponse{}, fmt.Errorf("invalid purchase_date (expected RFC3339): %w", err)
		}
	}

	split := taxmath.CalculateTaxInclusive(price, model.RateForTaxCode(svc.TaxCode))

	card := model.LoyaltyCard{
		ServiceID:     serviceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PurchaseDate:  purchaseDate,
		PurchasePrice: split.TotalAmount,
		NetAmount:     &split.NetAmount,
		VATAmount:     &split.TaxAmount,
		TaxCode:       svc.TaxCode,
		SessionsTotal: req.SessionsTotal,
	}

	if err := s.loyaltyRepo.Create(ctx, &card); err != nil {
		return LoyaltyCardResponse{}, fmt.Errorf("failed to create loyalty card: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionPurchaseLoyalty, card.ID.String(), req.CustomerName, req)

	resp := toLoyaltyCardResponse(card)
	resp.ServiceName = svc.Name
	return resp, nil
}

func (s *loyaltyService) RedeemSession(ctx context.Context, cardID, userID string) (LoyaltyCardResponse, error) {
	id, err := uuid.Parse(cardID)
	if err != nil {
		return LoyaltyCardResponse{}, fmt.Errorf("invalid card id: %w", err)
	}

	card, err := s.loyaltyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoyaltyCardResponse{}, fmt.Errorf("loyalty card not found")
		}
		return LoyaltyCardResponse{}, fmt.Errorf("failed to fetch loyalty card: %w", err)
	}

	if card.SessionsUsed >= card.SessionsTotal {
		return LoyaltyCardResponse{}, fmt.Errorf("loyalty card is fully redeemed (%d/%d sessions)", card.SessionsUsed, card.SessionsTotal)
	}

	card.SessionsUsed++
	if err := s.loyaltyRepo.Update(ctx, card); err != nil {
		return LoyaltyCardResponse{}, fmt.Errorf("failed to redeem session: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionRedeemLoyalty, card.ID.String(), card.CustomerName,
		map[string]int{"sessions_used": card.SessionsUsed, "sessions_total": card.SessionsTotal})

	return toLoyaltyCardResponse(*card), nil
}

func (s *loyaltyService) ListCards(ctx context.Context, spaID string, page, limit int) ([]LoyaltyCardResponse, int64, error) {
	var spaFilter *uuid.UUID
	if spaID != "" {
		parsed, err := uuid.Parse(spaID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid spa id: %w", err)
		}
		spaFilter = &parsed
	}

	cards, total, err := s.loyaltyRepo.List(ctx, spaFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loyalty cards: %w", err)
	}

	res := make([]LoyaltyCardResponse, 0, len(cards))
	for _, c := range cards {
		res = append(res, toLoyaltyCardResponse(c))
	}
	return res, total, nil
}

// --- Helpers ---

func toLoyaltyCardResponse(c model.LoyaltyCard) LoyaltyCardResponse {
	resp := LoyaltyCardResponse{
		ID:            c.ID.String(),
		ServiceID:     c.ServiceID.String(),
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		PurchaseDate:  c.PurchaseDate.Format(time.RFC3339),
		PurchasePrice: c.PurchasePrice.StringFixed(2),
		TaxCode:       c.TaxCode,
		SessionsTotal: c.SessionsTotal,
		SessionsUsed:  c.SessionsUsed,
	}
	if c.Service != nil {
		resp.ServiceName = c.Service.Name
	}
	if c.NetAmount != nil {
		resp.NetAmount = c.NetAmount.StringFixed(2)
	}
	if c.VATAmount != nil {
		resp.VATAmount = c.VATAmount.StringFixed(2)
	}
	return resp
}

