package handler

import (
	"net/http"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/pagination"
	"spa-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the tenant setup surface: spas, bookable services,
// retail products and staff.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	spas := router.Group("/api/spas")
	{
		spas.POST("", middleware.RequireRole("admin"), h.CreateSpa)
		spas.GET("", middleware.RequireRole("admin", "manager"), h.ListSpas)
	}

	services := router.Group("/api/services")
	{
		services.POST("", middleware.RequireRole("admin", "manager"), h.CreateService)
		services.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListServices)
		services.PUT("/:id", middleware.RequireRole("admin", "manager"), h.UpdateService)
	}

	products := router.Group("/api/products")
	{
		products.POST("", middleware.RequireRole("admin", "manager"), h.CreateProduct)
		products.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListProducts)
	}

	staff := router.Group("/api/staff")
	{
		staff.POST("", middleware.RequireRole("admin", "manager"), h.CreateStaff)
		staff.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListStaff)
	}
}

// @Summary      Create a spa
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateSpaRequest true "Spa payload"
// @Success      201 {object} response.Response{data=service.SpaResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/spas [post]
func (h *CatalogHandler) CreateSpa(c *gin.Context) {
	var req service.CreateSpaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	spa, err := h.catalogService.CreateSpa(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, spa))
}

// @Summary      List spas
// @Tags         catalog
// @Produce      json
// @Success      200 {object} response.Response{data=[]service.SpaResponse}
// @Security     BearerAuth
// @Router       /api/spas [get]
func (h *CatalogHandler) ListSpas(c *gin.Context) {
	p := pagination.Parse(c)
	spas, total, err := h.catalogService.ListSpas(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, spas, p.Page, p.Limit, total))
}

// @Summary      Create a service
// @Description  Prices are tax-inclusive; the response previews the embedded net and VAT split
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateServiceRequest true "Service payload"
// @Success      201 {object} response.Response{data=service.ServiceResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}

// @Summary      List services
// @Tags         catalog
// @Produce      json
// @Param        spa_id query string false "Filter by spa"
// @Success      200 {object} response.Response{data=[]service.ServiceResponse}
// @Security     BearerAuth
// @Router       /api/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	p := pagination.Parse(c)
	services, total, err := h.catalogService.ListServices(c.Request.Context(), c.Query("spa_id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, services, p.Page, p.Limit, total))
}

// @Summary      Update a service
// @Description  Partial update; price and tax code changes only apply to future bookings
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Service ID"
// @Param        payload body service.UpdateServiceRequest true "Fields to change"
// @Success      200 {object} response.Response{data=service.ServiceResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateProductRequest true "Product payload"
// @Success      201 {object} response.Response{data=service.ProductResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} response.Response{data=[]service.ProductResponse}
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	p := pagination.Parse(c)
	products, total, err := h.catalogService.ListProducts(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, products, p.Page, p.Limit, total))
}

// @Summary      Create a staff member
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateStaffRequest true "Staff payload"
// @Success      201 {object} response.Response{data=service.StaffResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/staff [post]
func (h *CatalogHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	staff, err := h.catalogService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, staff))
}

// @Summary      List staff
// @Tags         catalog
// @Produce      json
// @Param        spa_id query string false "Filter by spa"
// @Success      200 {object} response.Response{data=[]service.StaffResponse}
// @Security     BearerAuth
// @Router       /api/staff [get]
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	p := pagination.Parse(c)
	staff, total, err := h.catalogService.ListStaff(c.Request.Context(), c.Query("spa_id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, staff, p.Page, p.Limit, total))
}
