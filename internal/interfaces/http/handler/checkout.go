package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	checkoutapp "github.com/tommyfx/storefront/internal/application/checkout"
	"github.com/tommyfx/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout API endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("/shipping-options", h.ShippingOptions)
		checkout.POST("", h.Submit)
	}
}

// ShippingOptions lists the shipping tiers for the current cart
func (h *CheckoutHandler) ShippingOptions(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	resp, err := h.checkoutService.ShippingOptions(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit runs one checkout attempt for the session's cart
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	var req checkoutapp.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.checkoutService.Submit(c.Request.Context(), sessionID, getUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
