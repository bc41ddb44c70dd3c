package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultVATThreshold is the UAE mandatory VAT registration threshold in AED.
var DefaultVATThreshold = decimal.NewFromInt(375000)

// --- DTOs ---

type ThresholdStatus struct {
	CurrentYear           int    `json:"current_year"`
	AnnualRevenue         string `json:"annual_revenue"`
	ThresholdAmount       string `json:"threshold_amount"`
	ThresholdReached      bool   `json:"threshold_reached"`
	PercentageOfThreshold string `json:"percentage_of_threshold"`
	RemainingToThreshold  string `json:"remaining_to_threshold"`
	NotificationSent      bool   `json:"notification_sent"`
}

// --- Pure helpers ---

// CalculateAnnualRevenue sums invoice totals whose issue date falls inside the
// calendar year, [Jan 1 00:00:00, Dec 31 23:59:59] inclusive in the invoice's
// own location. No rounding is applied to the sum.
func CalculateAnnualRevenue(invoices []model.Invoice, year int) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, inv.IssueDate.Location())
		end := time.Date(year, time.December, 31, 23, 59, 59, 0, inv.IssueDate.Location())
		if inv.IssueDate.Before(start) || inv.IssueDate.After(end) {
			continue
		}
		sum = sum.Add(inv.TotalAmount)
	}
	return sum
}

// ShouldSendThresholdNotification decides whether a registration notice is
// due: only when the threshold is reached, and at most once per calendar
// year. Recording the sent year is the caller's job.
func ShouldSendThresholdNotification(thresholdReached bool, lastNotifiedYear *int, asOf time.Time) bool {
	if !thresholdReached {
		return false
	}
	return lastNotifiedYear == nil || *lastNotifiedYear < asOf.Year()
}

// --- Interface ---

// Broadcaster pushes a message to connected back-office clients.
type Broadcaster interface {
	BroadcastJSON(v interface{})
}

type VATThresholdService interface {
	// CheckThreshold reports a spa's position against the registration
	// threshold as of the given instant, firing the once-per-year
	// notification when the threshold is newly crossed.
	CheckThreshold(ctx context.Context, spaID uuid.UUID, asOf time.Time) (ThresholdStatus, error)
}

type vatThresholdService struct {
	invoiceRepo repository.InvoiceRepository
	spaRepo     repository.SpaRepository
	auditRepo   repository.AuditRepository
	hub         Broadcaster // nil when no websocket hub is wired
	threshold   decimal.Decimal
}

func NewVATThresholdService(
	invoiceRepo repository.InvoiceRepository,
	spaRepo repository.SpaRepository,
	auditRepo repository.AuditRepository,
	hub Broadcaster,
) VATThresholdService {
	return &vatThresholdService{
		invoiceRepo: invoiceRepo,
		spaRepo:     spaRepo,
		auditRepo:   auditRepo,
		hub:         hub,
		threshold:   DefaultVATThreshold,
	}
}

// --- Implementation ---

type thresholdNotice struct {
	Type            string `json:"type"`
	SpaID           string `json:"spa_id"`
	SpaName         string `json:"spa_name"`
	Year            int    `json:"year"`
	AnnualRevenue   string `json:"annual_revenue"`
	ThresholdAmount string `json:"threshold_amount"`
}

func (s *vatThresholdService) CheckThreshold(ctx context.Context, spaID uuid.UUID, asOf time.Time) (ThresholdStatus, error) {
	spa, err := s.spaRepo.FindByID(ctx, spaID)
	if err != nil {
		return ThresholdStatus{}, fmt.Errorf("failed to fetch spa: %w", err)
	}

	invoices, err := s.invoiceRepo.ListBySpa(ctx, spaID)
	if err != nil {
		return ThresholdStatus{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	year := asOf.Year()
	revenue := CalculateAnnualRevenue(invoices, year)
	reached := revenue.GreaterThanOrEqual(s.threshold)

	remaining := s.threshold.Sub(revenue)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	status := ThresholdStatus{
		CurrentYear:           year,
		AnnualRevenue:         revenue.StringFixed(2),
		ThresholdAmount:       s.threshold.StringFixed(2),
		ThresholdReached:      reached,
		PercentageOfThreshold: revenue.Div(s.threshold).Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2),
		RemainingToThreshold:  remaining.StringFixed(2),
	}

	if ShouldSendThresholdNotification(reached, spa.VATNotifiedYear, asOf) {
		s.notify(ctx, spa, year, status)
		status.NotificationSent = true
	}

	return status, nil
}

// notify broadcasts the registration notice, stamps the notified year and
// writes an audit entry. All best-effort: a failed side channel never fails
// the threshold check itself.
func (s *vatThresholdService) notify(ctx context.Context, spa *model.Spa, year int, status ThresholdStatus) {
	if s.hub != nil {
		s.hub.BroadcastJSON(thresholdNotice{
			Type:            "vat_threshold_reached",
			SpaID:           spa.ID.String(),
			SpaName:         spa.Name,
			Year:            year,
			AnnualRevenue:   status.AnnualRevenue,
			ThresholdAmount: status.ThresholdAmount,
		})
	}

	if err := s.spaRepo.SetVATNotifiedYear(ctx, spa.ID, year); err != nil {
		log.Printf("failed to record VAT notification year for spa %s: %v", spa.ID, err)
	}

	details, _ := json.Marshal(status)
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		Action:     model.ActionVATThresholdNotice,
		EntityID:   spa.ID.String(),
		EntityName: spa.Name,
		Details:    string(details),
	})
}
