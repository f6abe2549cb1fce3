package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tommyfx/storefront/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest represents a request to set a line's quantity.
// A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LineItemResponse represents one cart line in API responses
type LineItemResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	Items         []LineItemResponse `json:"items"`
	ItemCount     int                `json:"item_count"`
	TotalQuantity int                `json:"total_quantity"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]LineItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
		})
	}
	return CartResponse{
		Items:         items,
		ItemCount:     c.ItemCount(),
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
	}
}
