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

type RecordSaleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	SoldBy    string `json:"sold_by" binding:"required"` // staff id
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	SaleDate  string `json:"sale_date"` // RFC3339, defaults to now
}

type SaleResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	SoldBy      string `json:"sold_by"`
	SellerName  string `json:"seller_name,omitempty"`
	SaleDate    string `json:"sale_date"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"total_price"`
	NetAmount   string `json:"net_amount"`
	VATAmount   string `json:"vat_amount"`
	TaxCode     string `json:"tax_code"`
}

type SaleFilter struct {
	SpaID    string
	DateFrom string // YYYY-MM-DD
	DateTo   string
	Page     int
	Limit    int
}

// --- Interface ---

type SaleService interface {
	RecordSale(ctx context.Context, req RecordSaleRequest, userID string) (SaleResponse, error)
	ListSales(ctx context.Context, filter SaleFilter) ([]SaleResponse, int64, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	catalogRepo repository.CatalogRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	catalogRepo repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

// RecordSale prices the sale from the product catalog, splits the
// tax-inclusive total into net and VAT at write time, and decrements stock
// inside the same transaction.
func (s *saleService) RecordSale(ctx context.Context, req RecordSaleRequest, userID string) (SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid product id: %w", err)
	}
	staffID, err := uuid.Parse(req.SoldBy)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid staff id: %w", err)
	}

	if _, err := s.catalogRepo.GetStaff(ctx, staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SaleResponse{}, fmt.Errorf("staff member not found")
		}
		return SaleResponse{}, fmt.Errorf("failed to fetch staff member: %w", err)
	}

	product, err := s.saleRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SaleResponse{}, fmt.Errorf("product not found")
		}
		return SaleResponse{}, fmt.Errorf("failed to fetch product: %w", err)
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		saleDate, err = time.Parse(time.RFC3339, req.SaleDate)
		if err != nil {
			return SaleResponse{}, fmt.Errorf("invalid sale_date (expected RFC3339): %w", err)
		}
	}

	total := product.RetailPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	split := taxmath.CalculateTaxInclusive(total, model.RateForTaxCode(product.TaxCode))

	sale := model.ProductSale{
		ProductID:  productID,
		SoldBy:     staffID,
		SaleDate:   saleDate,
		Quantity:   req.Quantity,
		TotalPrice: split.TotalAmount,
		NetAmount:  &split.NetAmount,
		VATAmount:  &split.TaxAmount,
		TaxCode:    product.TaxCode,
	}

	if err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.AdjustStock(txCtx, productID, -req.Quantity); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("insufficient stock for product %s", product.SKU)
			}
			return err
		}
		return s.saleRepo.Create(txCtx, &sale)
	}); err != nil {
		return SaleResponse{}, fmt.Errorf("failed to record sale: %w", err)
	}

	logAudit(ctx, s.auditRepo, userID, model.ActionRecordProductSale, sale.ID.String(), product.Name, req)

	resp := toSaleResponse(sale)
	resp.ProductName = product.Name
	return resp, nil
}

func (s *saleService) ListSales(ctx context.Context, filter SaleFilter) ([]SaleResponse, int64, error) {
	repoFilter := repository.SaleListFilter{Page: filter.Page, Limit: filter.Limit}

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

	sales, total, err := s.saleRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}

	res := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		res = append(res, toSaleResponse(sale))
	}
	return res, total, nil
}

// --- Helpers ---

func toSaleResponse(sale model.ProductSale) SaleResponse {
	resp := SaleResponse{
		ID:         sale.ID.String(),
		ProductID:  sale.ProductID.String(),
		SoldBy:     sale.SoldBy.String(),
		SaleDate:   sale.SaleDate.Format(time.RFC3339),
		Quantity:   sale.Quantity,
		TotalPrice: sale.TotalPrice.StringFixed(2),
		TaxCode:    sale.TaxCode,
	}
	if sale.Product != nil {
		resp.ProductName = sale.Product.Name
	}
	if sale.Seller != nil {
		resp.SellerName = sale.Seller.DisplayName
	}
	if sale.NetAmount != nil {
		resp.NetAmount = sale.NetAmount.StringFixed(2)
	}
	if sale.VATAmount != nil {
		resp.VATAmount = sale.VATAmount.StringFixed(2)
	}
	return resp
}

