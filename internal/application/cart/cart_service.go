package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/tommyfx/storefront/internal/domain/cart"
	"github.com/tommyfx/storefront/internal/domain/catalog"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// Service handles cart operations for one session. Prices are always
// resolved from the catalog on add, so a client cannot dictate what it
// pays by posting its own numbers.
type Service struct {
	store       cart.Store
	productRepo catalog.Repository
}

// NewService creates a new cart Service
func NewService(store cart.Store, productRepo catalog.Repository) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
	}
}

// Get retrieves the cart for a session
func (s *Service) Get(ctx context.Context, sessionID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the session's cart, merging quantity if
// the product is already in it
func (s *Service) AddItem(ctx context.Context, sessionID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID must be a valid UUID")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is out of stock")
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := cart.NewLineItem(product.ID.String(), product.Name, product.GetPriceMoney(), product.Image, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(*item); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// UpdateQuantity sets the absolute quantity of a cart line. Zero or
// negative removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) (*CartResponse, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem removes a product from the cart. Removing a product that
// is not in the cart is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) (*CartResponse, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Delete(ctx, sessionID)
}
