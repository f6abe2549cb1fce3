package order

import (
	"github.com/shopspring/decimal"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// ShippingTier identifies a shipping option
type ShippingTier string

const (
	TierFree     ShippingTier = "free"
	TierStandard ShippingTier = "standard"
	TierExpress  ShippingTier = "express"
)

// IsValid checks if the tier is a known ShippingTier
func (t ShippingTier) IsValid() bool {
	switch t {
	case TierFree, TierStandard, TierExpress:
		return true
	}
	return false
}

// String returns the string representation of ShippingTier
func (t ShippingTier) String() string {
	return string(t)
}

// ShippingOption describes one selectable shipping tier
type ShippingOption struct {
	Tier         ShippingTier    `json:"tier"`
	DisplayName  string          `json:"display_name"`
	DeliveryTime string          `json:"delivery_time"`
	Cost         decimal.Decimal `json:"cost"`
	Available    bool            `json:"available"`
}

// ShippingPolicy maps a chosen tier to a cost, gated by the
// free-shipping subtotal threshold. Once the subtotal reaches the
// threshold, only the free tier is selectable and paid tiers are
// quoted at zero regardless of a stale selection.
type ShippingPolicy struct {
	standardCost  decimal.Decimal
	expressCost   decimal.Decimal
	freeThreshold decimal.Decimal
}

// NewShippingPolicy creates a shipping policy from configured rates
func NewShippingPolicy(standardCost, expressCost, freeThreshold decimal.Decimal) (*ShippingPolicy, error) {
	if standardCost.IsNegative() || expressCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping costs cannot be negative")
	}
	if freeThreshold.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_THRESHOLD", "Free shipping threshold cannot be negative")
	}
	return &ShippingPolicy{
		standardCost:  standardCost,
		expressCost:   expressCost,
		freeThreshold: freeThreshold,
	}, nil
}

// DefaultShippingPolicy returns the storefront's stock rate table
func DefaultShippingPolicy() *ShippingPolicy {
	return &ShippingPolicy{
		standardCost:  decimal.NewFromFloat(5.99),
		expressCost:   decimal.NewFromFloat(14.99),
		freeThreshold: decimal.NewFromInt(50),
	}
}

// QualifiesForFree returns true once the subtotal reaches the
// free-shipping threshold
func (p *ShippingPolicy) QualifiesForFree(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.freeThreshold)
}

// FreeThreshold returns the free-shipping subtotal threshold
func (p *ShippingPolicy) FreeThreshold() decimal.Decimal {
	return p.freeThreshold
}

// Quote returns the shipping cost for the selected tier given the
// cart subtotal. The gating is enforced here rather than trusting the
// caller: a paid tier selected while the subtotal qualifies for free
// shipping is charged zero.
func (p *ShippingPolicy) Quote(subtotal decimal.Decimal, tier ShippingTier) (decimal.Decimal, error) {
	if !tier.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_SHIPPING_TIER", "Unknown shipping tier: "+tier.String())
	}
	if p.QualifiesForFree(subtotal) {
		return decimal.Zero, nil
	}
	switch tier {
	case TierStandard:
		return p.standardCost, nil
	case TierExpress:
		return p.expressCost, nil
	}
	return decimal.Zero, nil
}

// Options returns all tiers with costs and availability for the
// given subtotal. Once free shipping qualifies, paid tiers become
// unavailable; below the threshold the free tier is unavailable.
func (p *ShippingPolicy) Options(subtotal decimal.Decimal) []ShippingOption {
	free := p.QualifiesForFree(subtotal)
	return []ShippingOption{
		{
			Tier:         TierFree,
			DisplayName:  "Free Shipping",
			DeliveryTime: "5-7 business days",
			Cost:         decimal.Zero,
			Available:    free,
		},
		{
			Tier:         TierStandard,
			DisplayName:  "Standard Shipping",
			DeliveryTime: "3-5 business days",
			Cost:         p.standardCost,
			Available:    !free,
		},
		{
			Tier:         TierExpress,
			DisplayName:  "Express Shipping",
			DeliveryTime: "1-2 business days",
			Cost:         p.expressCost,
			Available:    !free,
		},
	}
}
