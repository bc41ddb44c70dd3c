package handler

import (
	"net/http"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/pagination"
	"spa-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales")
	{
		sales.POST("", middleware.RequireRole("admin", "manager", "receptionist"), h.RecordSale)
		sales.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListSales)
	}
}

// @Summary      Record a product sale
// @Description  Records a retail sale, decrements stock and splits the tax-inclusive total into net and VAT
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        payload body service.RecordSaleRequest true "Sale payload"
// @Success      201 {object} response.Response{data=service.SaleResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/sales [post]
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req service.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// @Summary      List product sales
// @Tags         sales
// @Produce      json
// @Param        spa_id    query string false "Filter by spa (via selling staff)"
// @Param        date_from query string false "Sale date from (YYYY-MM-DD)"
// @Param        date_to   query string false "Sale date to (YYYY-MM-DD)"
// @Param        page      query int    false "Page number"
// @Param        limit     query int    false "Page size"
// @Success      200 {object} response.Response{data=[]service.SaleResponse}
// @Security     BearerAuth
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.SaleFilter{
		SpaID:    c.Query("spa_id"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, sales, p.Page, p.Limit, total))
}
