package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tommyfx/storefront/internal/domain/shared"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
)

// Status represents the status of a customer order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethodCOD is the only payment method the storefront accepts
const PaymentMethodCOD = "COD"

// Item is a line of an order. Product name and price are snapshots
// taken at purchase time, decoupled from the live catalog.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// NewItem creates a new order item snapshot
func NewItem(orderID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		CreatedAt:   time.Now(),
	}, nil
}

// Amount returns unit price multiplied by quantity
func (i *Item) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingInfo holds the shipping and contact fields collected at checkout
type ShippingInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Zip     string
	Country string
}

// Validate checks that all required contact fields are present.
// A missing phone is reported with its own error so callers can
// surface it distinctly.
func (s ShippingInfo) Validate() error {
	if s.Phone == "" {
		return shared.ErrMissingPhone
	}
	if s.Name == "" || s.Email == "" || s.Address == "" || s.City == "" || s.State == "" || s.Zip == "" || s.Country == "" {
		return shared.NewDomainError("MISSING_FIELD", "All shipping and contact fields are required")
	}
	return nil
}

// Order represents a customer order aggregate root.
// Orders are created once per checkout submission and never deleted;
// status moves forward only through the transitions in CanTransitionTo.
type Order struct {
	shared.BaseAggregateRoot
	UserID          *uuid.UUID // nil for guest checkout
	Items           []Item
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          Status
	PaymentMethod   string
	ShippingTier    ShippingTier
	CustomerName    string
	CustomerEmail   string
	Phone           string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string
}

// NewOrder creates a pending order from validated checkout input
func NewOrder(userID *uuid.UUID, info ShippingInfo, tier ShippingTier, subtotal, shippingCost decimal.Decimal) (*Order, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_TIER", "Unknown shipping tier: "+tier.String())
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER", "Subtotal cannot be negative")
	}
	if shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]Item, 0),
		Subtotal:          subtotal,
		ShippingCost:      shippingCost,
		TotalAmount:       subtotal.Add(shippingCost),
		Status:            StatusPending,
		PaymentMethod:     PaymentMethodCOD,
		ShippingTier:      tier,
		CustomerName:      info.Name,
		CustomerEmail:     info.Email,
		Phone:             info.Phone,
		ShippingAddress:   info.Address,
		ShippingCity:      info.City,
		ShippingState:     info.State,
		ShippingZip:       info.Zip,
		ShippingCountry:   info.Country,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// AddItem appends a product snapshot to the order.
// Orders accept items only while pending, before persistence.
func (o *Order) AddItem(productName string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewItem(o.ID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	return item, nil
}

// UpdateStatus transitions the order to a new status
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Cannot transition order from "+o.Status.String()+" to "+target.String())
	}
	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	return nil
}

// Cancel cancels the order
func (o *Order) Cancel() error {
	return o.UpdateStatus(StatusCancelled)
}

// IsTerminal returns true if order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// ItemCount returns the number of items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetTotalAmountMoney returns total amount as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// GetSubtotalMoney returns the item subtotal as Money
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}

// GetShippingCostMoney returns the shipping cost as Money
func (o *Order) GetShippingCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.ShippingCost)
}
