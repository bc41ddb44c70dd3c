package handler

import (
	"net/http"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/pagination"
	"spa-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("", middleware.RequireRole("admin", "manager", "receptionist"), h.IssueInvoice)
		invoices.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListInvoices)
		invoices.POST("/:id/void", middleware.RequireRole("admin", "manager"), h.VoidInvoice)
	}
}

// @Summary      Issue an invoice for a completed booking
// @Description  Numbers the invoice sequentially per spa and year and carries the booking's net, VAT and total
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        payload body service.IssueInvoiceRequest true "Invoice payload"
// @Success      201 {object} response.Response{data=service.InvoiceResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/invoices [post]
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	var req service.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.IssueForBooking(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        spa_id query string false "Filter by spa"
// @Param        status query string false "Filter by status (ISSUED, PAID, VOIDED)"
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Success      200 {object} response.Response{data=[]service.InvoiceResponse}
// @Security     BearerAuth
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	p := pagination.Parse(c)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Query("spa_id"), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, invoices, p.Page, p.Limit, total))
}

// @Summary      Void an invoice
// @Description  Voided invoices are excluded from annual revenue and threshold checks
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} response.Response{data=service.InvoiceResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/invoices/{id}/void [post]
func (h *InvoiceHandler) VoidInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}
