// Package session holds the per-terminal interaction state: the in-progress
// cart and the most recently generated bill. It replaces the original's
// global UI state with an explicit object owned by the handlers.
package session

import (
	"sync"

	"github.com/annapurna-pos/api/internal/billing"
	"github.com/annapurna-pos/api/internal/cart"
)

// Session is the state of one operator terminal. The design assumes a
// single operator working synchronously, but the mutex keeps overlapping
// HTTP requests from corrupting the cart.
type Session struct {
	mu       sync.Mutex
	cart     *cart.Cart
	lastBill *billing.Bill
}

func New() *Session {
	return &Session{cart: cart.New()}
}

// SetQuantity forwards to the cart's insert/replace/remove semantics.
func (s *Session) SetQuantity(itemID int64, qty int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(itemID, qty)
}

// Lines returns the current cart snapshot, ordered by item id.
func (s *Session) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Snapshot returns a detached copy of the cart for bill computation, so a
// failed generation leaves the live cart untouched.
func (s *Session) Snapshot() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cart.New()
	for _, line := range s.cart.Lines() {
		_ = c.SetQuantity(line.ItemID, line.Quantity)
	}
	return c
}

// Complete records the successfully persisted bill and empties the cart,
// starting the next bill cycle.
func (s *Session) Complete(b *billing.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBill = b
	s.cart.Clear()
}

// LastBill returns the most recently generated bill, nil if none yet.
func (s *Session) LastBill() *billing.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBill
}

// ClearCart empties the cart without touching the last bill.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}
