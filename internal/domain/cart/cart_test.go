package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
)

// Test helpers
func testItem(t *testing.T, id string, price float64, quantity int) LineItem {
	item, err := NewLineItem(id, "Product "+id, valueobject.NewMoneyUSDFromFloat(price), "/images/"+id+".jpg", quantity)
	require.NoError(t, err)
	return *item
}

// ============================================
// NewLineItem Tests
// ============================================

func TestNewLineItem(t *testing.T) {
	t.Run("creates item with valid inputs", func(t *testing.T) {
		item, err := NewLineItem("prod-1", "Rose Lip Balm", valueobject.NewMoneyUSDFromFloat(12.50), "/images/lip-balm.jpg", 2)
		require.NoError(t, err)
		require.NotNil(t, item)

		assert.Equal(t, "prod-1", item.ProductID)
		assert.Equal(t, "Rose Lip Balm", item.Name)
		assert.True(t, decimal.NewFromFloat(12.50).Equal(item.UnitPrice))
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("fails with empty product ID", func(t *testing.T) {
		_, err := NewLineItem("", "Name", valueobject.NewMoneyUSDFromFloat(1), "", 1)
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewLineItem("prod-1", "", valueobject.NewMoneyUSDFromFloat(1), "", 1)
		assert.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewLineItem("prod-1", "Name", valueobject.NewMoneyUSDFromFloat(-1), "", 1)
		assert.Error(t, err)
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		_, err := NewLineItem("prod-1", "Name", valueobject.NewMoneyUSDFromFloat(1), "", 0)
		assert.Error(t, err)
	})
}

func TestLineItem_Amount(t *testing.T) {
	item := testItem(t, "a", 10.50, 3)
	assert.True(t, decimal.NewFromFloat(31.50).Equal(item.Amount()))
}

// ============================================
// Cart Tests
// ============================================

func TestCart_AddItem(t *testing.T) {
	t.Run("appends new line", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))

		assert.Equal(t, 1, c.ItemCount())
		assert.Equal(t, 2, c.GetItem("a").Quantity)
	})

	t.Run("merges quantity for existing product ID", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 3)))

		assert.Equal(t, 1, c.ItemCount())
		assert.Equal(t, 5, c.GetItem("a").Quantity)
	})

	t.Run("keeps distinct products on separate lines", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 1)))
		require.NoError(t, c.AddItem(testItem(t, "b", 5, 1)))

		assert.Equal(t, 2, c.ItemCount())
	})

	t.Run("fails with invalid quantity", func(t *testing.T) {
		c := NewCart()
		err := c.AddItem(LineItem{ProductID: "a", Name: "A", UnitPrice: decimal.NewFromInt(1), Quantity: 0})
		assert.Error(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(testItem(t, "a", 10, 1)))
	require.NoError(t, c.AddItem(testItem(t, "b", 5, 1)))

	c.RemoveItem("a")
	assert.Equal(t, 1, c.ItemCount())
	assert.Nil(t, c.GetItem("a"))

	// Removing an absent product is a no-op
	c.RemoveItem("missing")
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))

		c.UpdateQuantity("a", 7)
		assert.Equal(t, 7, c.GetItem("a").Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))

		c.UpdateQuantity("a", 0)
		assert.Nil(t, c.GetItem("a"))
		assert.True(t, c.IsEmpty())
	})

	t.Run("negative quantity removes the line", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))

		c.UpdateQuantity("a", -3)
		assert.Nil(t, c.GetItem("a"))
	})

	t.Run("cart never holds a non-positive quantity", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 1)))
		require.NoError(t, c.AddItem(testItem(t, "b", 5, 1)))

		c.UpdateQuantity("a", 0)
		c.UpdateQuantity("b", -1)
		for _, item := range c.Items {
			assert.Positive(t, item.Quantity)
		}
	})
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))
	require.NoError(t, c.AddItem(testItem(t, "b", 5, 1)))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_Subtotal(t *testing.T) {
	t.Run("empty cart is zero", func(t *testing.T) {
		assert.True(t, NewCart().Subtotal().IsZero())
	})

	t.Run("sums price times quantity over all lines", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))
		require.NoError(t, c.AddItem(testItem(t, "b", 5, 1)))

		assert.True(t, decimal.NewFromInt(25).Equal(c.Subtotal()))
	})

	t.Run("tracks quantity updates", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddItem(testItem(t, "a", 3.25, 1)))

		c.UpdateQuantity("a", 4)
		assert.True(t, decimal.NewFromFloat(13).Equal(c.Subtotal()))
	})
}

func TestCart_TotalQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))
	require.NoError(t, c.AddItem(testItem(t, "b", 5, 3)))

	assert.Equal(t, 5, c.TotalQuantity())
}

// ============================================
// Serialization Tests
// ============================================

func TestCart_JSONRoundTrip(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))
	require.NoError(t, c.AddItem(testItem(t, "b", 5.99, 1)))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	require.Equal(t, c.ItemCount(), restored.ItemCount())
	for _, item := range c.Items {
		got := restored.GetItem(item.ProductID)
		require.NotNil(t, got)
		assert.Equal(t, item.Name, got.Name)
		assert.Equal(t, item.Image, got.Image)
		assert.Equal(t, item.Quantity, got.Quantity)
		assert.True(t, item.UnitPrice.Equal(got.UnitPrice))
	}
	assert.True(t, c.Subtotal().Equal(restored.Subtotal()))
}

func TestCart_MarshalShape(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(testItem(t, "a", 10, 2)))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	// Persisted shape is a plain array with numeric prices
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "a", raw[0]["id"])
	assert.Equal(t, float64(10), raw[0]["price"])
	assert.Equal(t, float64(2), raw[0]["quantity"])
}

func TestCart_UnmarshalClientPayload(t *testing.T) {
	data := []byte(`[{"id":"a","name":"Rose Lip Balm","price":12.5,"image":"/images/a.jpg","quantity":2}]`)

	var c Cart
	require.NoError(t, json.Unmarshal(data, &c))

	item := c.GetItem("a")
	require.NotNil(t, item)
	assert.Equal(t, "Rose Lip Balm", item.Name)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(item.UnitPrice))
	assert.Equal(t, 2, item.Quantity)
}
