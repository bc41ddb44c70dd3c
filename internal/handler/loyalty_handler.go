package handler

import (
	"net/http"

	"spa-backend/internal/middleware"
	"spa-backend/internal/service"
	"spa-backend/pkg/pagination"
	"spa-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	loyaltyService service.LoyaltyService
}

func NewLoyaltyHandler(loyaltyService service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

func (h *LoyaltyHandler) RegisterRoutes(router *gin.RouterGroup) {
	cards := router.Group("/api/loyalty-cards")
	{
		cards.POST("", middleware.RequireRole("admin", "manager", "receptionist"), h.PurchaseCard)
		cards.GET("", middleware.RequireRole("admin", "manager", "receptionist"), h.ListCards)
		cards.POST("/:id/redeem", middleware.RequireRole("admin", "manager", "receptionist"), h.RedeemSession)
	}
}

// @Summary      Purchase a loyalty card
// @Description  Sells a multi-session bundle for one service; the tax-inclusive bundle price is split into net and VAT
// @Tags         loyalty
// @Accept       json
// @Produce      json
// @Param        payload body service.PurchaseLoyaltyCardRequest true "Card payload"
// @Success      201 {object} response.Response{data=service.LoyaltyCardResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/loyalty-cards [post]
func (h *LoyaltyHandler) PurchaseCard(c *gin.Context) {
	var req service.PurchaseLoyaltyCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	card, err := h.loyaltyService.PurchaseCard(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, card))
}

// @Summary      Redeem a loyalty session
// @Description  Consumes one session from a card; fails when the card is used up
// @Tags         loyalty
// @Produce      json
// @Param        id path string true "Card ID"
// @Success      200 {object} response.Response{data=service.LoyaltyCardResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/loyalty-cards/{id}/redeem [post]
func (h *LoyaltyHandler) RedeemSession(c *gin.Context) {
	card, err := h.loyaltyService.RedeemSession(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}

// @Summary      List loyalty cards
// @Tags         loyalty
// @Produce      json
// @Param        spa_id query string false "Filter by spa (via the card's service)"
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Success      200 {object} response.Response{data=[]service.LoyaltyCardResponse}
// @Security     BearerAuth
// @Router       /api/loyalty-cards [get]
func (h *LoyaltyHandler) ListCards(c *gin.Context) {
	p := pagination.Parse(c)

	cards, total, err := h.loyaltyService.ListCards(c.Request.Context(), c.Query("spa_id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, cards, p.Page, p.Limit, total))
}
