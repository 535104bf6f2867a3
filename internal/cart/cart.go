package cart

import (
	"errors"
	"sort"
)

// ErrNegativeQuantity is returned by SetQuantity for quantities below zero.
var ErrNegativeQuantity = errors.New("quantity must be >= 0")

// Line is one item selection in the cart. Quantity is always > 0: a line
// at zero is represented by absence, never stored.
type Line struct {
	ItemID   int64
	Quantity int32
}

// Cart maps item ids to requested quantities for one customer
// interaction. Not safe for concurrent use; the owning session serializes
// access.
type Cart struct {
	lines map[int64]int32
}

func New() *Cart {
	return &Cart{lines: make(map[int64]int32)}
}

// SetQuantity inserts or replaces the line for itemID. Quantity zero
// removes the line (no-op if absent).
func (c *Cart) SetQuantity(itemID int64, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	if qty == 0 {
		delete(c.lines, itemID)
		return nil
	}
	c.lines[itemID] = qty
	return nil
}

// Quantity returns the current quantity for itemID, zero if absent.
func (c *Cart) Quantity(itemID int64) int32 {
	return c.lines[itemID]
}

// Lines returns a snapshot of the cart ordered by item id.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for id, qty := range c.lines {
		out = append(out, Line{ItemID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart unconditionally. Called only after a bill has
// been both computed and durably recorded.
func (c *Cart) Clear() {
	c.lines = make(map[int64]int32)
}
