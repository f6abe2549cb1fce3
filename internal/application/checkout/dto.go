package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tommyfx/storefront/internal/domain/order"
)

// SubmitRequest represents one checkout submission
type SubmitRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,min=1,max=30"`
	Address      string `json:"address" binding:"required,min=1,max=300"`
	City         string `json:"city" binding:"required,min=1,max=100"`
	State        string `json:"state" binding:"required,min=1,max=100"`
	Zip          string `json:"zip" binding:"required,min=1,max=20"`
	Country      string `json:"country" binding:"required,min=1,max=100"`
	ShippingTier string `json:"shipping_tier" binding:"required,oneof=free standard express"`
}

// ShippingInfo converts the request to the domain value
func (r SubmitRequest) ShippingInfo() order.ShippingInfo {
	return order.ShippingInfo{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Address: strings.TrimSpace(r.Address),
		City:    strings.TrimSpace(r.City),
		State:   strings.TrimSpace(r.State),
		Zip:     strings.TrimSpace(r.Zip),
		Country: strings.TrimSpace(r.Country),
	}
}

// SubmitResponse represents the outcome of a successful checkout
type SubmitResponse struct {
	OrderID      uuid.UUID       `json:"order_id"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ShippingOptionResponse represents one selectable shipping tier for
// the session's current subtotal
type ShippingOptionResponse struct {
	Tier         string          `json:"tier"`
	DisplayName  string          `json:"display_name"`
	DeliveryTime string          `json:"delivery_time"`
	Cost         decimal.Decimal `json:"cost"`
	Available    bool            `json:"available"`
}

// ShippingOptionsResponse lists the tiers plus the threshold context
type ShippingOptionsResponse struct {
	Subtotal         decimal.Decimal          `json:"subtotal"`
	FreeThreshold    decimal.Decimal          `json:"free_threshold"`
	QualifiesForFree bool                     `json:"qualifies_for_free"`
	Options          []ShippingOptionResponse `json:"options"`
}

// ToSubmitResponse converts a persisted order to the checkout response
func ToSubmitResponse(o *order.Order) SubmitResponse {
	return SubmitResponse{
		OrderID:      o.ID,
		Status:       o.Status.String(),
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		TotalAmount:  o.TotalAmount,
		CreatedAt:    o.CreatedAt,
	}
}
