package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tommyfx/storefront/internal/domain/order"
)

// ListFilter represents filter options for order listings
type ListFilter struct {
	Status    *order.Status `form:"status"`
	StartDate *time.Time    `form:"start_date"`
	EndDate   *time.Time    `form:"end_date"`
	Page      int           `form:"page"`
	PageSize  int           `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string        `form:"order_by"`
	OrderDir  string        `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateStatusRequest represents a request to move an order forward
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// ItemResponse represents an order item in API responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Response represents an order in API responses
type Response struct {
	ID              uuid.UUID       `json:"id"`
	UserID          *uuid.UUID      `json:"user_id,omitempty"`
	Items           []ItemResponse  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingTier    string          `json:"shipping_tier"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	Phone           string          `json:"phone"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingState   string          `json:"shipping_state"`
	ShippingZip     string          `json:"shipping_zip"`
	ShippingCountry string          `json:"shipping_country"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListItemResponse represents an order in list responses (less detail)
type ListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	ShippingTier string          `json:"shipping_tier"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToResponse converts a domain order to a response DTO
func ToResponse(o *order.Order) Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}
	return Response{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status.String(),
		PaymentMethod:   o.PaymentMethod,
		ShippingTier:    o.ShippingTier.String(),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		Phone:           o.Phone,
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		ShippingState:   o.ShippingState,
		ShippingZip:     o.ShippingZip,
		ShippingCountry: o.ShippingCountry,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToListItemResponses converts domain orders to list DTOs
func ToListItemResponses(orders []order.Order) []ListItemResponse {
	responses := make([]ListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		responses = append(responses, ListItemResponse{
			ID:           o.ID,
			ItemCount:    o.ItemCount(),
			TotalAmount:  o.TotalAmount,
			Status:       o.Status.String(),
			ShippingTier: o.ShippingTier.String(),
			CreatedAt:    o.CreatedAt,
		})
	}
	return responses
}
