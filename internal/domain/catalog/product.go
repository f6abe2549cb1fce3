package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tommyfx/storefront/internal/domain/shared"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
)

// Product represents a catalog product. Prices here are live; carts
// and orders snapshot them at add-to-cart / purchase time.
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Featured    bool
	InStock     bool
}

// NewProduct creates a new catalog product
func NewProduct(name, description string, price valueobject.Money, image, category string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price.Amount(),
		Image:       image,
		Category:    category,
		InStock:     true,
	}, nil
}

// UpdatePrice sets a new live price for the product
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// MarkOutOfStock flags the product as unavailable for purchase
func (p *Product) MarkOutOfStock() {
	p.InStock = false
	p.UpdatedAt = time.Now()
}

// GetPriceMoney returns the price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}
