// internal/domain/cart/entity.go
package cart

import (
	"strings"
	"time"
)

// Item represents "one line item" in a cart.
// Uniqueness within a cart is defined by (productId, color, size);
// absent color/size participate in the key as empty strings.
type Item struct {
	ProductID   string `json:"productId" firestore:"productId"`
	ProductName string `json:"productName" firestore:"productName"`
	Quantity    int    `json:"quantity" firestore:"quantity"`
	UnitPrice   int64  `json:"unitPrice" firestore:"unitPrice"` // minor units
	Color       string `json:"color,omitempty" firestore:"color"`
	Size        string `json:"size,omitempty" firestore:"size"`
	ImageURL    string `json:"imageUrl,omitempty" firestore:"imageUrl"`
}

type itemKey struct {
	productID string
	color     string
	size      string
}

func (it Item) key() itemKey {
	return itemKey{
		productID: strings.TrimSpace(it.ProductID),
		color:     strings.TrimSpace(it.Color),
		size:      strings.TrimSpace(it.Size),
	}
}

// Cart represents "a cart document".
//   - docId = userId (Firestore)
//   - Items: []Item, insertion order preserved; merging never reorders
//
// Mutators are synchronous and never fail. Input validation (qty >= 1,
// non-negative price) is the caller's responsibility, as is routing a
// quantity decrement below 1 to RemoveItem instead of SetQuantity.
type Cart struct {
	// UserID is Firestore docId (= principal uid).
	UserID string `json:"userId" firestore:"userId"`

	Items []Item `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New creates an empty cart doc for userID.
func New(userID string, now time.Time) *Cart {
	return &Cart{
		UserID:    strings.TrimSpace(userID),
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges it into the cart. If an entry with the same
// (productId, color, size) already exists its quantity is incremented
// by it.Quantity and its position is kept; otherwise it is appended.
func (c *Cart) AddItem(it Item, now time.Time) {
	if c.Items == nil {
		c.Items = []Item{}
	}

	if idx := c.findIndex(it.key()); idx >= 0 {
		c.Items[idx].Quantity += it.Quantity
		c.touch(now)
		return
	}

	c.Items = append(c.Items, it)
	c.touch(now)
}

// RemoveItem removes the single entry whose composite key matches exactly
// (an absent color/size matches only an absent color/size). No-op on miss.
func (c *Cart) RemoveItem(productID, color, size string, now time.Time) {
	idx := c.findIndex(itemKey{
		productID: strings.TrimSpace(productID),
		color:     strings.TrimSpace(color),
		size:      strings.TrimSpace(size),
	})
	if idx < 0 {
		return
	}
	// preserve order of the remaining entries
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch(now)
}

// SetQuantity replaces the quantity of the matching entry. It does not
// enforce quantity >= 1. No-op if no entry matches.
func (c *Cart) SetQuantity(productID string, quantity int, color, size string, now time.Time) {
	idx := c.findIndex(itemKey{
		productID: strings.TrimSpace(productID),
		color:     strings.TrimSpace(color),
		size:      strings.TrimSpace(size),
	})
	if idx < 0 {
		return
	}
	c.Items[idx].Quantity = quantity
	c.touch(now)
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.touch(now)
}

// TotalAmount returns Σ(unitPrice × quantity) over all entries, using each
// entry's stored unit price, not a live catalog lookup. Totals stay stable
// even if catalog prices change after an item was added.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// TotalItems returns Σ(quantity).
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no entries.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Snapshot returns a copy of the entries, taken at the start of order
// submission so later cart mutations cannot leak into the order.
func (c *Cart) Snapshot() []Item {
	if len(c.Items) == 0 {
		return []Item{}
	}
	snap := make([]Item, len(c.Items))
	copy(snap, c.Items)
	return snap
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Cart) findIndex(k itemKey) int {
	for i := range c.Items {
		if c.Items[i].key() == k {
			return i
		}
	}
	return -1
}
