package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// VATReportFilter scopes a VAT return. Nil dates mean unbounded on that side;
// nil SpaID means platform-wide; an empty TaxCode means all codes plus a
// per-code breakdown.
type VATReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	SpaID     *uuid.UUID
	TaxCode   string
}

// StreamTotal is the aggregate for one revenue stream (or the overall line).
type StreamTotal struct {
	Count       int64  `json:"count"`
	NetAmount   string `json:"net_amount"`
	VATAmount   string `json:"vat_amount"`
	GrossAmount string `json:"gross_amount"`
}

// TaxCodeTotal is one row of the per-tax-code breakdown.
type TaxCodeTotal struct {
	TaxCode     string `json:"tax_code"`
	Count       int64  `json:"count"`
	NetAmount   string `json:"net_amount"`
	VATAmount   string `json:"vat_amount"`
	GrossAmount string `json:"gross_amount"`
}

// VATReportResult is the consolidated VAT return. Built fresh per request,
// never persisted.
type VATReportResult struct {
	PeriodStart  string         `json:"period_start"` // ISO date or "All time"
	PeriodEnd    string         `json:"period_end"`
	Bookings     StreamTotal    `json:"bookings"`
	ProductSales StreamTotal    `json:"product_sales"`
	LoyaltyCards StreamTotal    `json:"loyalty_cards"`
	Overall      StreamTotal    `json:"overall"`
	ByTaxCode    []TaxCodeTotal `json:"by_tax_code"`
}

// --- Interface ---

type VATReportService interface {
	GenerateReport(ctx context.Context, filter VATReportFilter) (VATReportResult, error)
}

type vatReportService struct {
	db *gorm.DB
}

func NewVATReportService(db *gorm.DB) VATReportService {
	return &vatReportService{db: db}
}

// --- Implementation ---

// streamRow is one grouped aggregate row: totals for a single tax code within
// one revenue stream. Null net/vat columns coalesce to zero in SQL.
type streamRow struct {
	TaxCode string          `gorm:"column:tax_code"`
	Count   int64           `gorm:"column:count"`
	Net     decimal.Decimal `gorm:"column:net"`
	VAT     decimal.Decimal `gorm:"column:vat"`
	Gross   decimal.Decimal `gorm:"column:gross"`
}

// streamAgg collects a stream's grouped rows into running totals.
type streamAgg struct {
	rows  []streamRow
	count int64
	net   decimal.Decimal
	vat   decimal.Decimal
	gross decimal.Decimal
}

func collect(rows []streamRow) streamAgg {
	agg := streamAgg{rows: rows}
	for _, r := range rows {
		agg.count += r.Count
		agg.net = agg.net.Add(r.Net)
		agg.vat = agg.vat.Add(r.VAT)
		agg.gross = agg.gross.Add(r.Gross)
	}
	return agg
}

func (a streamAgg) total() StreamTotal {
	return StreamTotal{
		Count:       a.count,
		NetAmount:   a.net.StringFixed(2),
		VATAmount:   a.vat.StringFixed(2),
		GrossAmount: a.gross.StringFixed(2),
	}
}

// GenerateReport aggregates the three revenue streams for the period. Each
// stream issues a single query grouped by tax code; the per-stream totals,
// overall totals and breakdown are all assembled from those grouped rows, so
// a report always costs exactly three aggregate queries. The three queries
// run concurrently; the first error fails the whole report.
func (s *vatReportService) GenerateReport(ctx context.Context, filter VATReportFilter) (VATReportResult, error) {
	var (
		wg       sync.WaitGroup
		bookings, sales, loyalty []streamRow
		errB, errS, errL error
	)

	wg.Add(3)
	go func() { defer wg.Done(); bookings, errB = s.queryBookingItems(ctx, filter) }()
	go func() { defer wg.Done(); sales, errS = s.queryProductSales(ctx, filter) }()
	go func() { defer wg.Done(); loyalty, errL = s.queryLoyaltyCards(ctx, filter) }()
	wg.Wait()

	for _, err := range []error{errB, errS, errL} {
		if err != nil {
			return VATReportResult{}, err
		}
	}

	aggB := collect(bookings)
	aggS := collect(sales)
	aggL := collect(loyalty)

	result := VATReportResult{
		PeriodStart:  formatBound(filter.StartDate),
		PeriodEnd:    formatBound(filter.EndDate),
		Bookings:     aggB.total(),
		ProductSales: aggS.total(),
		LoyaltyCards: aggL.total(),
		Overall: StreamTotal{
			Count:       aggB.count + aggS.count + aggL.count,
			NetAmount:   aggB.net.Add(aggS.net).Add(aggL.net).StringFixed(2),
			VATAmount:   aggB.vat.Add(aggS.vat).Add(aggL.vat).StringFixed(2),
			GrossAmount: aggB.gross.Add(aggS.gross).Add(aggL.gross).StringFixed(2),
		},
		ByTaxCode: []TaxCodeTotal{},
	}

	// A caller-supplied tax code already narrows every stream, so the
	// breakdown would just repeat the overall line; leave it empty.
	if filter.TaxCode == "" {
		result.ByTaxCode = breakdown(aggB, aggS, aggL)
	}

	return result, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "All time"
	}
	return t.Format("2006-01-02")
}

// breakdown sums the three streams' grouped rows per tax code, in the fixed
// SR, ZR, ES, OP order. Codes partition rows, so these nets sum to the
// overall net.
func breakdown(aggs ...streamAgg) []TaxCodeTotal {
	byCode := make(map[string]*TaxCodeTotal, len(model.TaxCodes))
	sums := make(map[string]*streamAgg, len(model.TaxCodes))
	for _, code := range model.TaxCodes {
		byCode[code] = &TaxCodeTotal{TaxCode: code}
		sums[code] = &streamAgg{}
	}

	for _, agg := range aggs {
		for _, r := range agg.rows {
			sum, ok := sums[r.TaxCode]
			if !ok {
				continue // unknown code in stored data, ignore
			}
			sum.count += r.Count
			sum.net = sum.net.Add(r.Net)
			sum.vat = sum.vat.Add(r.VAT)
			sum.gross = sum.gross.Add(r.Gross)
		}
	}

	out := make([]TaxCodeTotal, 0, len(model.TaxCodes))
	for _, code := range model.TaxCodes {
		sum := sums[code]
		out = append(out, TaxCodeTotal{
			TaxCode:     code,
			Count:       sum.count,
			NetAmount:   sum.net.StringFixed(2),
			VATAmount:   sum.vat.StringFixed(2),
			GrossAmount: sum.gross.StringFixed(2),
		})
	}
	return out
}

func (s *vatReportService) queryBookingItems(ctx context.Context, f VATReportFilter) ([]streamRow, error) {
	q := s.db.WithContext(ctx).Table("booking_items").
		Select("booking_items.tax_code AS tax_code, COUNT(*) AS count, " +
			"COALESCE(SUM(booking_items.net_amount), 0) AS net, " +
			"COALESCE(SUM(booking_items.vat_amount), 0) AS vat, " +
			"COALESCE(SUM(booking_items.price), 0) AS gross").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Group("booking_items.tax_code")

	if f.SpaID != nil {
		q = q.Where("bookings.spa_id = ?", *f.SpaID)
	}
	if f.StartDate != nil {
		q = q.Where("bookings.booking_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("bookings.booking_date <= ?", *f.EndDate)
	}
	if f.TaxCode != "" {
		q = q.Where("booking_items.tax_code = ?", f.TaxCode)
	}

	var rows []streamRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate booking items: %w", err)
	}
	return rows, nil
}

func (s *vatReportService) queryProductSales(ctx context.Context, f VATReportFilter) ([]streamRow, error) {
	q := s.db.WithContext(ctx).Table("product_sales").
		Select("product_sales.tax_code AS tax_code, COUNT(*) AS count, " +
			"COALESCE(SUM(product_sales.net_amount), 0) AS net, " +
			"COALESCE(SUM(product_sales.vat_amount), 0) AS vat, " +
			"COALESCE(SUM(product_sales.total_price), 0) AS gross").
		Group("product_sales.tax_code")

	// Tenant scoping runs through the selling staff member.
	if f.SpaID != nil {
		q = q.Joins("JOIN staffs ON staffs.id = product_sales.sold_by").
			Where("staffs.spa_id = ?", *f.SpaID)
	}
	if f.StartDate != nil {
		q = q.Where("product_sales.sale_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("product_sales.sale_date <= ?", *f.EndDate)
	}
	if f.TaxCode != "" {
		q = q.Where("product_sales.tax_code = ?", f.TaxCode)
	}

	var rows []streamRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate product sales: %w", err)
	}
	return rows, nil
}

func (s *vatReportService) queryLoyaltyCards(ctx context.Context, f VATReportFilter) ([]streamRow, error) {
	q := s.db.WithContext(ctx).Table("loyalty_cards").
		Select("loyalty_cards.tax_code AS tax_code, COUNT(*) AS count, " +
			"COALESCE(SUM(loyalty_cards.net_amount), 0) AS net, " +
			"COALESCE(SUM(loyalty_cards.vat_amount), 0) AS vat, " +
			"COALESCE(SUM(loyalty_cards.purchase_price), 0) AS gross").
		Group("loyalty_cards.tax_code")

	// Tenant scoping runs through the purchased service.
	if f.SpaID != nil {
		q = q.Joins("JOIN services ON services.id = loyalty_cards.service_id").
			Where("services.spa_id = ?", *f.SpaID)
	}
	if f.StartDate != nil {
		q = q.Where("loyalty_cards.purchase_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("loyalty_cards.purchase_date <= ?", *f.EndDate)
	}
	if f.TaxCode != "" {
		q = q.Where("loyalty_cards.tax_code = ?", f.TaxCode)
	}

	var rows []streamRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate loyalty cards: %w", err)
	}
	return rows, nil
}
