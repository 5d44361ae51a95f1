// Package cart implements the session-scoped parts list staged before a job is saved.
package cart

import (
	"sync"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// Item is a part in the cart, unique by OEM part number.
type Item struct {
	part.Part
}

// Cart holds parts the user marked for purchase. It lives in memory only.
// The zero value is ready to use and safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []Item
	index map[string]struct{}
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends p unless a part with the same OEM number is already present.
// The first add wins; details of later duplicates are ignored.
func (c *Cart) Add(p part.Part) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(p)
}

// AddAll adds every part not already present and returns how many were added.
func (c *Cart) AddAll(parts []part.Part) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for i := range parts {
		if c.addLocked(parts[i]) {
			added++
		}
	}
	return added
}

func (c *Cart) addLocked(p part.Part) bool {
	if c.index == nil {
		c.index = make(map[string]struct{})
	}
	if _, ok := c.index[p.OEMPartNumber]; ok {
		return false
	}
	c.index[p.OEMPartNumber] = struct{}{}
	c.items = append(c.items, Item{Part: p})
	return true
}

// Remove deletes the item with the given OEM number. Missing numbers are a no-op.
func (c *Cart) Remove(oemPartNumber string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[oemPartNumber]; !ok {
		return false
	}
	delete(c.index, oemPartNumber)
	for i := range c.items {
		if c.items[i].OEMPartNumber == oemPartNumber {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return true
}

// Total sums MSRP prices over current items; absent prices count as 0.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for i := range c.items {
		sum += c.items[i].Price()
	}
	return part.RoundCents(sum)
}

// Items returns a snapshot of the cart in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Parts returns the cart contents as plain parts.
func (c *Cart) Parts() []part.Part {
	items := c.Items()
	out := make([]part.Part, len(items))
	for i := range items {
		out[i] = items[i].Part
	}
	return out
}

// Len returns the number of items.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.index = nil
}
