package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// Repository defines the interface for order persistence.
// Create must persist the order row and all of its item rows as one
// unit: item insertion never observes a missing parent order, and a
// failed item insert leaves no orphan order behind.
type Repository interface {
	// Create persists a new order together with its items
	Create(ctx context.Context, o *Order) error

	// FindByID finds an order by ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds orders placed by a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUser counts orders placed by a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
