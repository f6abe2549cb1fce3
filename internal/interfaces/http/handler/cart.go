package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/tommyfx/storefront/internal/application/cart"
)

// CartHandler handles cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:productId", h.UpdateQuantity)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

// Get returns the session's cart
func (h *CartHandler) Get(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	resp, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a product to the session's cart
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateQuantity sets the absolute quantity of a cart line
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("productId"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, err := getCartSession(c)
	if err != nil {
		h.BadRequest(c, "Missing cart session")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"cleared": true})
}
