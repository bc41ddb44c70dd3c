package handler

import (
	"net/http"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/pagination"
	"spa-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/api/bookings")
	{
		bookings.POST("", middleware.RequireRole("admin", "manager", "receptionist"), h.CreateBooking)
		bookings.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListBookings)
		bookings.GET("/:id", middleware.RequireRole("admin", "manager", "receptionist"), h.GetBooking)
		bookings.PATCH("/:id/status", middleware.RequireRole("admin", "manager", "receptionist"), h.UpdateStatus)
	}
}

// @Summary      Create a booking
// @Description  Creates a booking with one or more service items; each item's tax-inclusive price is split into net and VAT
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateBookingRequest true "Booking payload"
// @Success      201 {object} response.Response{data=service.BookingResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Param        spa_id    query string false "Filter by spa"
// @Param        status    query string false "Filter by status"
// @Param        date_from query string false "Booking date from (YYYY-MM-DD)"
// @Param        date_to   query string false "Booking date to (YYYY-MM-DD)"
// @Param        page      query int    false "Page number"
// @Param        limit     query int    false "Page size"
// @Success      200 {object} response.Response{data=[]service.BookingResponse}
// @Security     BearerAuth
// @Router       /api/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.BookingFilter{
		SpaID:    c.Query("spa_id"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, bookings, p.Page, p.Limit, total))
}

// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} response.Response{data=service.BookingResponse}
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary      Update booking status
// @Description  Moves a booking between PENDING, CONFIRMED and COMPLETED, or cancels it
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Booking ID"
// @Param        payload body updateBookingStatusRequest true "New status"
// @Success      200 {object} response.Response{data=service.BookingResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}
