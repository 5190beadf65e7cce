// Package cart owns the per-session order carts that the POS and customer
// pages mutate. All totals are recomputed from the line list on every read.
package cart

import (
	"sync"
	"time"

	"github.com/dogarmed/storefront/internal/domain/models"
)

// Cart accumulates lines for one session. Not safe for concurrent use on its
// own; the Store only touches it while holding its lock, and carts never
// escape the store.
type Cart struct {
	lines    []models.CartLine
	lastUsed time.Time
}

// Add increments the quantity of an existing line matched by product id, or
// appends a new line with quantity 1.
func (c *Cart) Add(productID int64, name string, price float64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  1,
	})
}

// AddLine merges an externally built line (handoff payloads carry their own
// quantities) into the cart.
func (c *Cart) AddLine(line models.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// Remove drops the whole line for the product id. Removing an absent product
// is a no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns an order-preserving copy of the cart contents.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the cart total from scratch.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// View renders the cart for the page.
func (c *Cart) View() models.CartView {
	return models.CartView{Lines: c.Lines(), Total: c.Total()}
}

// Billing computes the change due for a tendered amount.
func (c *Cart) Billing(paid float64) models.BillingSummary {
	total := c.Total()
	return models.BillingSummary{Total: total, Paid: paid, Change: paid - total}
}

// Store keeps one cart per session id and serializes every access: all
// reads and mutations happen under its lock and return copies, never the
// cart itself.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a session cart store whose idle carts expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		carts: make(map[string]*Cart),
		ttl:   ttl,
		now:   time.Now,
	}
}

// get returns the cart for a session, creating it on first use. Caller must
// hold s.mu.
func (s *Store) get(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	c.lastUsed = s.now()
	return c
}

// Add increments or appends a one-unit line in the session's cart.
func (s *Store) Add(sessionID string, productID int64, name string, price float64) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.Add(productID, name, price)
	return c.View()
}

// Merge folds externally built lines into the session's cart.
func (s *Store) Merge(sessionID string, lines []models.CartLine) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	for _, line := range lines {
		c.AddLine(line)
	}
	return c.View()
}

// Remove drops a product's whole line from the session's cart.
func (s *Store) Remove(sessionID string, productID int64) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.Remove(productID)
	return c.View()
}

// View renders the session's cart for the page.
func (s *Store) View(sessionID string) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).View()
}

// Billing computes the change due for a tendered amount against the
// session's cart.
func (s *Store) Billing(sessionID string, paid float64) models.BillingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).Billing(paid)
}

// Drop removes a session's cart entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sweep evicts carts idle for longer than the store TTL and reports how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, c := range s.carts {
		if c.lastUsed.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}
