package notification

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemPayload is one purchased line in a confirmation message
type OrderItemPayload struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderPayload carries the order facts included in a confirmation
type OrderPayload struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []OrderItemPayload `json:"items"`
}

// CustomerPayload carries the recipient's contact details
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Confirmation is the order-confirmation message handed to a Notifier
type Confirmation struct {
	Order    OrderPayload    `json:"order"`
	Customer CustomerPayload `json:"customer"`
}

// Notifier dispatches order-confirmation messages. Dispatch is
// best-effort: callers log failures and never treat them as a
// checkout failure.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, c Confirmation) error
}
