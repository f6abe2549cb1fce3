package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tommyfx/storefront/internal/domain/shared"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
)

// LineItem represents one product entry in the cart, keyed by product ID.
// UnitPrice is a price snapshot taken when the item was added.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int
}

// NewLineItem creates a new cart line item
func NewLineItem(productID, name string, unitPrice valueobject.Money, image string, quantity int) (*LineItem, error) {
	if productID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &LineItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice.Amount(),
		Image:     image,
		Quantity:  quantity,
	}, nil
}

// Amount returns unit price multiplied by quantity
func (i *LineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *LineItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// lineItemJSON is the persisted wire shape of a line item.
// Price travels as a plain JSON number so carts written by older
// clients can still be read back.
type lineItemJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Quantity int         `json:"quantity"`
}

// MarshalJSON implements json.Marshaler
func (i LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ID:       i.ProductID,
		Name:     i.Name,
		Price:    json.Number(i.UnitPrice.String()),
		Image:    i.Image,
		Quantity: i.Quantity,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (i *LineItem) UnmarshalJSON(data []byte) error {
	var v lineItemJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	price, err := decimal.NewFromString(v.Price.String())
	if err != nil {
		return fmt.Errorf("invalid line item price: %w", err)
	}
	i.ProductID = v.ID
	i.Name = v.Name
	i.UnitPrice = price
	i.Image = v.Image
	i.Quantity = v.Quantity
	return nil
}

// Cart is the aggregate holding the active shopping cart for one session.
// At most one line item exists per product ID.
type Cart struct {
	Items []LineItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{Items: make([]LineItem, 0)}
}

// AddItem adds a line item to the cart. If an item with the same
// product ID already exists, its quantity is incremented by the
// incoming quantity instead of appending a duplicate line.
func (c *Cart) AddItem(item LineItem) error {
	if item.ProductID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if item.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == item.ProductID {
			c.Items[idx].Quantity += item.Quantity
			return nil
		}
	}

	c.Items = append(c.Items, item)
	return nil
}

// RemoveItem removes the line item with the given product ID.
// Removing an absent product is a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing line item to the
// given absolute value. A quantity of zero or less removes the line,
// so the cart never holds a non-positive quantity.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = make([]LineItem, 0)
}

// IsEmpty returns true if the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of unit price times quantity over all lines.
// An empty cart has a subtotal of zero.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// GetSubtotalMoney returns the subtotal as Money value object
func (c *Cart) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.Subtotal())
}

// ItemCount returns the number of distinct line items
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// GetItem returns the line item for a product ID, or nil if absent
func (c *Cart) GetItem(productID string) *LineItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// MarshalJSON serializes the cart as a plain array of line items,
// the shape stored by the client and round-trippable back into a Cart.
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = make([]LineItem, 0)
	}
	c.Items = items
	return nil
}
