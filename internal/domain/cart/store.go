package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for cart persistence.
// A cart is scoped to one client session and must survive a page
// reload within that session; it is not shared across sessions.
type Store interface {
	// Get loads the cart for a session, returning an empty cart when
	// none has been saved yet
	Get(ctx context.Context, sessionID uuid.UUID) (*Cart, error)

	// Save persists the cart for a session
	Save(ctx context.Context, sessionID uuid.UUID, c *Cart) error

	// Delete removes the persisted cart for a session
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
