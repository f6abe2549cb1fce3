package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// Repository defines the interface for product catalog reads
type Repository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll lists products with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory lists products in a category
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Product, error)

	// FindFeatured lists featured products
	FindFeatured(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error
}
