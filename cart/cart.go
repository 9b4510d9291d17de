package cart

import (
	"sync"

	"kedai/models"
)

// Cart is the session cart. One instance exists per process; handlers may
// run concurrently, so all access goes through the mutex. The total is
// derived state: it is recomputed after every mutation and never set
// directly.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	total float64
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges a catalog book into the cart. An already-present id has its
// quantity incremented by one and keeps the pre-order flag it was given at
// first add; a new id is appended with quantity one and a pre-order flag
// derived from the book's current inventory.
func (c *Cart) AddItem(book models.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == book.ID {
			c.items[i].Quantity++
			c.recompute()
			return
		}
	}
	c.items = append(c.items, models.CartItem{
		Book:       book,
		Quantity:   1,
		IsPreOrder: book.Inventory == 0,
	})
	c.recompute()
}

// UpdateQuantity sets the quantity of the matching line item. Callers clamp
// the value to be non-negative; the cart stores whatever it receives. A
// quantity of zero keeps the row in place; the UI removes rows explicitly
// via RemoveItem. Returns false when no line item matches.
func (c *Cart) UpdateQuantity(id string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			c.recompute()
			return true
		}
	}
	return false
}

// RemoveItem deletes the matching line item. Removing an absent id is a
// no-op, not an error.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.recompute()
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.total = 0
}

// Items returns a copy of the current line items in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Snapshot returns the items and total as one consistent view, for the
// checkout value-copy.
func (c *Cart) Snapshot() ([]models.CartItem, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out, c.total
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// recompute re-derives the total. Callers hold the mutex.
func (c *Cart) recompute() {
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	c.total = total
}
