package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommyfx/storefront/internal/domain/cart"
)

func testCart(t *testing.T) *cart.Cart {
	c := cart.NewCart()
	require.NoError(t, c.AddItem(cart.LineItem{
		ProductID: "prod-1",
		Name:      "Rose Lip Balm",
		UnitPrice: decimal.NewFromFloat(12.50),
		Image:     "/images/lip-balm.jpg",
		Quantity:  2,
	}))
	return c
}

func TestInMemoryCartStore_Get(t *testing.T) {
	store := NewInMemoryCartStore(time.Hour)
	defer store.Close()

	ctx := context.Background()

	t.Run("returns empty cart for unknown session", func(t *testing.T) {
		c, err := store.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("round-trips a saved cart", func(t *testing.T) {
		sessionID := uuid.New()
		saved := testCart(t)

		require.NoError(t, store.Save(ctx, sessionID, saved))

		loaded, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		require.Equal(t, 1, loaded.ItemCount())

		item := loaded.GetItem("prod-1")
		require.NotNil(t, item)
		assert.Equal(t, "Rose Lip Balm", item.Name)
		assert.Equal(t, 2, item.Quantity)
		assert.True(t, decimal.NewFromFloat(12.50).Equal(item.UnitPrice))
	})

	t.Run("sessions do not share carts", func(t *testing.T) {
		sessionA := uuid.New()
		sessionB := uuid.New()

		require.NoError(t, store.Save(ctx, sessionA, testCart(t)))

		c, err := store.Get(ctx, sessionB)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestInMemoryCartStore_Delete(t *testing.T) {
	store := NewInMemoryCartStore(time.Hour)
	defer store.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	require.NoError(t, store.Save(ctx, sessionID, testCart(t)))
	require.NoError(t, store.Delete(ctx, sessionID))

	c, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestInMemoryCartStore_Expiration(t *testing.T) {
	store := NewInMemoryCartStore(10 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	require.NoError(t, store.Save(ctx, sessionID, testCart(t)))

	time.Sleep(20 * time.Millisecond)

	c, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "expired cart should read back empty")
}

func TestInMemoryCartStore_Close(t *testing.T) {
	store := NewInMemoryCartStore(time.Hour)

	require.NoError(t, store.Close())
	// Safe to call multiple times
	require.NoError(t, store.Close())
}
