package service

import (
	"context"
	"fmt"
	"time"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"
	"spa-backend/pkg/taxmath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateSpaRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Currency string `json:"currency"`
	TRN      string `json:"trn"`
}

type SpaResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Currency        string `json:"currency"`
	TRN             string `json:"trn"`
	VATRegistered   bool   `json:"vat_registered"`
	VATNotifiedYear *int   `json:"vat_notified_year"`
	CreatedAt       string `json:"created_at"`
}

type CreateServiceRequest struct {
	SpaID           string `json:"spa_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Price           string `json:"price" binding:"required"` // tax-inclusive
	DurationMinutes int    `json:"duration_minutes"`
	TaxCode         string `json:"tax_code"`
}

type ServiceResponse struct {
	ID              string `json:"id"`
	SpaID           string `json:"spa_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	NetAmount       string `json:"net_amount"` // derived, not stored
	VATAmount       string `json:"vat_amount"`
	DurationMinutes int    `json:"duration_minutes"`
	TaxCode         string `json:"tax_code"`
}

// UpdateServiceRequest carries partial updates; nil fields stay unchanged.
type UpdateServiceRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	DurationMinutes *int    `json:"duration_minutes"`
	TaxCode         *string `json:"tax_code"`
	Active          *bool   `json:"active"`
}

type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	RetailPrice string `json:"retail_price" binding:"required"` // tax-inclusive
	StockQty    int    `json:"stock_qty"`
	TaxCode     string `json:"tax_code"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	RetailPrice string `json:"retail_price"`
	StockQty    int    `json:"stock_qty"`
	TaxCode     string `json:"tax_code"`
}

type CreateStaffRequest struct {
	SpaID       string `json:"spa_id" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Title       string `json:"title"`
}

type StaffResponse struct {
	ID          string `json:"id"`
	SpaID       string `json:"spa_id"`
	DisplayName string `json:"display_name"`
	Title       string `json:"title"`
}

// --- Interface ---

type CatalogService interface {
	CreateSpa(ctx context.Context, req CreateSpaRequest) (SpaResponse, error)
	ListSpas(ctx context.Context, page, limit int) ([]SpaResponse, int64, error)
	CreateService(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	ListServices(ctx context.Context, spaID string, page, limit int) ([]ServiceResponse, int64, error)
	UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (ServiceResponse, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	ListStaff(ctx context.Context, spaID string, page, limit int) ([]StaffResponse, int64, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	spaRepo     repository.SpaRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository, spaRepo repository.SpaRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo, spaRepo: spaRepo}
}

// --- Implementation ---

func (s *catalogService) CreateSpa(ctx context.Context, req CreateSpaRequest) (SpaResponse, error) {
	spa := model.Spa{
		Name:          req.Name,
		Slug:          req.Slug,
		Currency:      req.Currency,
		TRN:           req.TRN,
		VATRegistered: req.TRN != "",
	}
	if spa.Currency == "" {
		spa.Currency = "AED"
	}
	if err := s.spaRepo.Create(ctx, &spa); err != nil {
		return SpaResponse{}, fmt.Errorf("failed to create spa: %w", err)
	}
	return toSpaResponse(spa), nil
}

func (s *catalogService) ListSpas(ctx context.Context, page, limit int) ([]SpaResponse, int64, error) {
	spas, total, err := s.spaRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list spas: %w", err)
	}
	out := make([]SpaResponse, 0, len(spas))
	for _, spa := range spas {
		out = append(out, toSpaResponse(spa))
	}
	return out, total, nil
}

func (s *catalogService) CreateService(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error) {
	spaID, err := uuid.Parse(req.SpaID)
	if err != nil {
		return ServiceResponse{}, fmt.Errorf("invalid spa id")
	}
	if _, err := s.spaRepo.FindByID(ctx, spaID); err != nil {
		return ServiceResponse{}, fmt.Errorf("spa not found")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return ServiceResponse{}, fmt.Errorf("invalid price")
	}
	taxCode := req.TaxCode
	if taxCode == "" {
		taxCode = model.TaxCodeStandard
	}
	if !model.IsValidTaxCode(taxCode) {
		return ServiceResponse{}, fmt.Errorf("unknown tax code %q", taxCode)
	}

	svc := model.Service{
		SpaID:           spaID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           price.Round(2),
		DurationMinutes: req.DurationMinutes,
		TaxCode:         taxCode,
		Active:          true,
	}
	if svc.DurationMinutes <= 0 {
		svc.DurationMinutes = 60
	}
	if err := s.catalogRepo.CreateService(ctx, &svc); err != nil {
		return ServiceResponse{}, fmt.Errorf("failed to create service: %w", err)
	}
	return toServiceResponse(svc), nil
}

func (s *catalogService) ListServices(ctx context.Context, spaID string, page, limit int) ([]ServiceResponse, int64, error) {
	var spaFilter *uuid.UUID
	if spaID != "" {
		id, err := uuid.Parse(spaID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid spa id")
		}
		spaFilter = &id
	}

	services, total, err := s.catalogRepo.ListServices(ctx, spaFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	out := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, toServiceResponse(svc))
	}
	return out, total, nil
}

// UpdateService applies a partial update. Changing the price or tax code only
// affects lines written afterwards; existing rows keep their stored split.
func (s *catalogService) UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (ServiceResponse, error) {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return ServiceResponse{}, fmt.Errorf("invalid service id")
	}
	svc, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		return ServiceResponse{}, fmt.Errorf("service not found")
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return ServiceResponse{}, fmt.Errorf("invalid price")
		}
		svc.Price = price.Round(2)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return ServiceResponse{}, fmt.Errorf("duration must be positive")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.TaxCode != nil {
		if !model.IsValidTaxCode(*req.TaxCode) {
			return ServiceResponse{}, fmt.Errorf("unknown tax code %q", *req.TaxCode)
		}
		svc.TaxCode = *req.TaxCode
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.catalogRepo.UpdateService(ctx, svc); err != nil {
		return ServiceResponse{}, fmt.Errorf("failed to update service: %w", err)
	}
	return toServiceResponse(*svc), nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	price, err := decimal.NewFromString(req.RetailPrice)
	if err != nil || price.IsNegative() {
		return ProductResponse{}, fmt.Errorf("invalid retail price")
	}
	if req.StockQty < 0 {
		return ProductResponse{}, fmt.Errorf("stock quantity cannot be negative")
	}
	taxCode := req.TaxCode
	if taxCode == "" {
		taxCode = model.TaxCodeStandard
	}
	if !model.IsValidTaxCode(taxCode) {
		return ProductResponse{}, fmt.Errorf("unknown tax code %q", taxCode)
	}

	product := model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		RetailPrice: price.Round(2),
		StockQty:    req.StockQty,
		TaxCode:     taxCode,
	}
	if err := s.catalogRepo.CreateProduct(ctx, &product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductResponse(product), nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error) {
	products, total, err := s.catalogRepo.ListProducts(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, total, nil
}

func (s *catalogService) CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	spaID, err := uuid.Parse(req.SpaID)
	if err != nil {
		return StaffResponse{}, fmt.Errorf("invalid spa id")
	}
	if _, err := s.spaRepo.FindByID(ctx, spaID); err != nil {
		return StaffResponse{}, fmt.Errorf("spa not found")
	}

	staff := model.Staff{
		SpaID:       spaID,
		DisplayName: req.DisplayName,
		Title:       req.Title,
		Active:      true,
	}
	if err := s.catalogRepo.CreateStaff(ctx, &staff); err != nil {
		return StaffResponse{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return toStaffResponse(staff), nil
}

func (s *catalogService) ListStaff(ctx context.Context, spaID string, page, limit int) ([]StaffResponse, int64, error) {
	var spaFilter *uuid.UUID
	if spaID != "" {
		id, err := uuid.Parse(spaID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid spa id")
		}
		spaFilter = &id
	}

	staff, total, err := s.catalogRepo.ListStaff(ctx, spaFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	out := make([]StaffResponse, 0, len(staff))
	for _, st := range staff {
		out = append(out, toStaffResponse(st))
	}
	return out, total, nil
}

// --- Mappers ---

func toSpaResponse(spa model.Spa) SpaResponse {
	return SpaResponse{
		ID:              spa.ID.String(),
		Name:            spa.Name,
		Slug:            spa.Slug,
		Currency:        spa.Currency,
		TRN:             spa.TRN,
		VATRegistered:   spa.VATRegistered,
		VATNotifiedYear: spa.VATNotifiedYear,
		CreatedAt:       spa.CreatedAt.Format(time.RFC3339),
	}
}

func toServiceResponse(svc model.Service) ServiceResponse {
	b := taxmath.CalculateTaxInclusive(svc.Price, model.RateForTaxCode(svc.TaxCode))
	return ServiceResponse{
		ID:              svc.ID.String(),
		SpaID:           svc.SpaID.String(),
		Name:            svc.Name,
		Description:     svc.Description,
		Price:           svc.Price.StringFixed(2),
		NetAmount:       b.NetAmount.StringFixed(2),
		VATAmount:       b.TaxAmount.StringFixed(2),
		DurationMinutes: svc.DurationMinutes,
		TaxCode:         svc.TaxCode,
	}
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		RetailPrice: p.RetailPrice.StringFixed(2),
		StockQty:    p.StockQty,
		TaxCode:     p.TaxCode,
	}
}

func toStaffResponse(st model.Staff) StaffResponse {
	return StaffResponse{
		ID:          st.ID.String(),
		SpaID:       st.SpaID.String(),
		DisplayName: st.DisplayName,
		Title:       st.Title,
	}
}
