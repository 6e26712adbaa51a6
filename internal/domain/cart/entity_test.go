package cart

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func item(productID string, qty int, price int64, color, size string) Item {
	return Item{
		ProductID:   productID,
		ProductName: "product " + productID,
		Quantity:    qty,
		UnitPrice:   price,
		Color:       color,
		Size:        size,
	}
}

func TestAddItem_MergesSameCompositeKey(t *testing.T) {
	c := New("user-1", t0)

	c.AddItem(item("p1", 2, 1000, "red", "M"), t0)
	c.AddItem(item("p1", 3, 1000, "red", "M"), t0.Add(time.Minute))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, int64(1000), c.Items[0].UnitPrice)
}

func TestAddItem_DifferentColorCreatesSeparateEntry(t *testing.T) {
	c := New("user-1", t0)

	c.AddItem(item("p1", 1, 1000, "red", "M"), t0)
	c.AddItem(item("p1", 1, 1000, "blue", "M"), t0)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "red", c.Items[0].Color)
	assert.Equal(t, "blue", c.Items[1].Color)
}

func TestAddItem_AbsentVariantFieldsArePartOfKey(t *testing.T) {
	c := New("user-1", t0)

	c.AddItem(item("p1", 1, 500, "", ""), t0)
	c.AddItem(item("p1", 1, 500, "red", ""), t0)
	c.AddItem(item("p1", 4, 500, "", ""), t0)

	require.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestAddItem_MergePreservesInsertionOrder(t *testing.T) {
	c := New("user-1", t0)

	c.AddItem(item("a", 1, 100, "", ""), t0)
	c.AddItem(item("b", 1, 100, "", ""), t0)
	c.AddItem(item("c", 1, 100, "", ""), t0)
	// merging into "a" must not move it
	c.AddItem(item("a", 1, 100, "", ""), t0)

	require.Len(t, c.Items, 3)
	assert.Equal(t, "a", c.Items[0].ProductID)
	assert.Equal(t, "b", c.Items[1].ProductID)
	assert.Equal(t, "c", c.Items[2].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestRemoveItem_ExactMatchOnly(t *testing.T) {
	c := New("user-1", t0)

	c.AddItem(item("p1", 1, 100, "red", "M"), t0)
	c.AddItem(item("p1", 2, 100, "red", "L"), t0)
	c.AddItem(item("p2", 3, 200, "", ""), t0)

	c.RemoveItem("p1", "red", "M", t0)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "L", c.Items[0].Size)
	assert.Equal(t, "p2", c.Items[1].ProductID)

	// no match (wrong size): untouched, same order and fields
	c.RemoveItem("p1", "red", "XL", t0)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 3, c.Items[1].Quantity)
}

func TestSetQuantity_ReplacesWithoutLowerBound(t *testing.T) {
	c := New("user-1", t0)
	c.AddItem(item("p1", 5, 100, "", ""), t0)

	c.SetQuantity("p1", 0, "", "", t0)
	assert.Equal(t, 0, c.Items[0].Quantity)

	// miss is a no-op
	c.SetQuantity("p9", 3, "", "", t0)
	require.Len(t, c.Items, 1)
}

func TestTotals_Scenario(t *testing.T) {
	c := New("user-1", t0)
	c.AddItem(item("p1", 2, 1000, "", ""), t0)
	c.AddItem(item("p2", 1, 500, "", ""), t0)

	assert.Equal(t, int64(2500), c.TotalAmount())
	assert.Equal(t, 3, c.TotalItems())
}

func TestTotals_RandomizedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		c := New("user-1", t0)

		var wantAmount int64
		wantItems := 0
		n := rng.Intn(20)
		for j := 0; j < n; j++ {
			qty := 1 + rng.Intn(9)
			price := int64(rng.Intn(100000))
			// unique keys so expected values add up independently
			c.AddItem(item(fmt.Sprintf("p%d", j), qty, price, "", ""), t0)
			wantAmount += price * int64(qty)
			wantItems += qty
		}

		assert.Equal(t, wantAmount, c.TotalAmount())
		assert.Equal(t, wantItems, c.TotalItems())
	}
}

func TestClear(t *testing.T) {
	c := New("user-1", t0)
	c.AddItem(item("p1", 2, 1000, "", ""), t0)

	c.Clear(t0.Add(time.Minute))

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalAmount())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, t0.Add(time.Minute), c.UpdatedAt)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := New("user-1", t0)
	c.AddItem(item("p1", 2, 1000, "", ""), t0)

	snap := c.Snapshot()
	c.SetQuantity("p1", 9, "", "", t0)

	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)
}
