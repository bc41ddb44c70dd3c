package handler

import (
	"net/http"
	"time"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/response"
	"spa-backend/pkg/taxmath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VATHandler struct {
	reportService    service.VATReportService
	thresholdService service.VATThresholdService
}

func NewVATHandler(reportService service.VATReportService, thresholdService service.VATThresholdService) *VATHandler {
	return &VATHandler{reportService: reportService, thresholdService: thresholdService}
}

func (h *VATHandler) RegisterRoutes(router *gin.RouterGroup) {
	vatGroup := router.Group("/api/vat")
	{
		vatGroup.GET("/report", middleware.RequireRole("admin", "manager"), h.GetReport)
		vatGroup.GET("/threshold", middleware.RequireRole("admin", "manager"), h.GetThresholdStatus)
		vatGroup.POST("/net-payable", middleware.RequireRole("admin", "manager"), h.NetPayable)
		vatGroup.POST("/quote", middleware.RequireRole("admin", "manager", "receptionist"), h.Quote)
	}
}

// @Summary      Get VAT return report
// @Description  Aggregates net, VAT and gross across bookings, product sales and loyalty cards, with a per-tax-code breakdown
// @Tags         vat
// @Produce      json
// @Param        startDate query string false "Period start (YYYY-MM-DD), inclusive"
// @Param        endDate   query string false "Period end (YYYY-MM-DD), inclusive"
// @Param        spaId     query string false "Restrict to one spa"
// @Param        taxCode   query string false "Restrict to one tax code (SR, ZR, ES, OP)"
// @Success      200 {object} response.Response{data=service.VATReportResult}
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/vat/report [get]
func (h *VATHandler) GetReport(c *gin.Context) {
	var filter service.VATReportFilter

	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD"))
			return
		}
		filter.StartDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD"))
			return
		}
		// Make the end bound inclusive of the whole day.
		t = t.Add(24*time.Hour - time.Second)
		filter.EndDate = &t
	}
	if s := c.Query("spaId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid spaId"))
			return
		}
		filter.SpaID = &id
	}
	filter.TaxCode = c.Query("taxCode")

	result, err := h.reportService.GenerateReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// @Summary      Get VAT registration threshold status
// @Description  Annual revenue of a spa against the mandatory registration threshold, as of now
// @Tags         vat
// @Produce      json
// @Param        spaId query string true "Spa ID"
// @Success      200 {object} response.Response{data=service.ThresholdStatus}
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/vat/threshold [get]
func (h *VATHandler) GetThresholdStatus(c *gin.Context) {
	spaID, err := uuid.Parse(c.Query("spaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid or missing spaId"))
		return
	}

	status, err := h.thresholdService.CheckThreshold(c.Request.Context(), spaID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

type netPayableRequest struct {
	VATCollected string `json:"vat_collected" binding:"required"`
	VATPaid      string `json:"vat_paid" binding:"required"`
}

type netPayableResponse struct {
	VATCollected  string `json:"vat_collected"`
	VATPaid       string `json:"vat_paid"`
	NetVATPayable string `json:"net_vat_payable"`
}

// @Summary      Compute net VAT payable
// @Description  Collected minus paid for a filing period; negative means refundable
// @Tags         vat
// @Accept       json
// @Produce      json
// @Param        payload body netPayableRequest true "Collected and paid VAT"
// @Success      200 {object} response.Response{data=netPayableResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/vat/net-payable [post]
func (h *VATHandler) NetPayable(c *gin.Context) {
	var req netPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	collected, err := decimal.NewFromString(req.VATCollected)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid vat_collected amount"))
		return
	}
	paid, err := decimal.NewFromString(req.VATPaid)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid vat_paid amount"))
		return
	}

	nv := taxmath.CalculateNetVAT(collected, paid)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, netPayableResponse{
		VATCollected:  nv.VATCollected.StringFixed(2),
		VATPaid:       nv.VATPaid.StringFixed(2),
		NetVATPayable: nv.NetVATPayable.StringFixed(2),
	}))
}

type quoteRequest struct {
	TotalPrice string `json:"total_price"` // tax-inclusive; mutually exclusive with net_amount
	NetAmount  string `json:"net_amount"`
	TaxRate    string `json:"tax_rate" binding:"required"` // percentage, e.g. "5"
}

type quoteResponse struct {
	TotalAmount    string `json:"total_amount"`
	NetAmount      string `json:"net_amount"`
	TaxAmount      string `json:"tax_amount"`
	TaxRate        string `json:"tax_rate"`
	TotalFormatted string `json:"total_formatted"`
}

// @Summary      Quote a tax split
// @Description  Splits a tax-inclusive price into net and VAT, or grosses up a net amount
// @Tags         vat
// @Accept       json
// @Produce      json
// @Param        payload body quoteRequest true "Either total_price or net_amount, plus tax_rate"
// @Success      200 {object} response.Response{data=quoteResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/vat/quote [post]
func (h *VATHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if (req.TotalPrice == "") == (req.NetAmount == "") {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "provide exactly one of total_price or net_amount"))
		return
	}

	rate, err := decimal.NewFromString(req.TaxRate)
	if err != nil || rate.IsNegative() {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid tax_rate"))
		return
	}

	var b taxmath.Breakdown
	if req.TotalPrice != "" {
		total, err := decimal.NewFromString(req.TotalPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid total_price amount"))
			return
		}
		b = taxmath.CalculateTaxInclusive(total, rate)
	} else {
		net, err := decimal.NewFromString(req.NetAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid net_amount"))
			return
		}
		total := taxmath.CalculateTotalFromNet(net, rate)
		b = taxmath.CalculateTaxInclusive(total, rate)
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quoteResponse{
		TotalAmount:    b.TotalAmount.StringFixed(2),
		NetAmount:      b.NetAmount.StringFixed(2),
		TaxAmount:      b.TaxAmount.StringFixed(2),
		TaxRate:        b.TaxRate.String(),
		TotalFormatted: taxmath.FormatCurrency(b.TotalAmount, "AED"),
	}))
}
