package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
)

// OrderBuilder is the in-memory cart for the sale currently being rung up on
// one register. A register has a single writer, but the builder still locks
// because checkout snapshots the cart from another goroutine.
type OrderBuilder struct {
	mu    sync.Mutex
	lines []entity.SaleLine
}

// NewOrderBuilder creates an empty cart
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{}
}

// AddLine adds one unit of the product. If the product is already in the
// cart its quantity is incremented, otherwise a new line is appended.
func (b *OrderBuilder) AddLine(product *entity.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID == product.ID {
			b.lines[i].Quantity++
			return
		}
	}

	b.lines = append(b.lines, entity.SaleLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
		Category:  product.Category,
	})
}

// RemoveLine removes one unit of the product. The line disappears when its
// quantity reaches zero; removing an absent product is a no-op.
func (b *OrderBuilder) RemoveLine(productID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID != productID {
			continue
		}
		b.lines[i].Quantity--
		if b.lines[i].Quantity <= 0 {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
		}
		return
	}
}

// RawTotal returns the sum of unit price times quantity over all lines,
// before any bonus application.
func (b *OrderBuilder) RawTotal() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total int64
	for _, line := range b.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// Lines returns a snapshot of the cart contents
func (b *OrderBuilder) Lines() []entity.SaleLine {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.SaleLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (b *OrderBuilder) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines) == 0
}

// Clear empties the cart. Called only after a successful checkout or when
// the shift closes.
func (b *OrderBuilder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// CartRegistry hands out one OrderBuilder per register ID so multiple tills
// can ring up independent orders against the same engine.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[string]*OrderBuilder
}

// NewCartRegistry creates an empty cart registry
func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*OrderBuilder)}
}

// Cart returns the cart for a register, creating it on first use
func (r *CartRegistry) Cart(register string) *OrderBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[register]
	if !ok {
		cart = NewOrderBuilder()
		r.carts[register] = cart
	}
	return cart
}

// ClearAll empties every register's cart. Used when a shift closes.
func (r *CartRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cart := range r.carts {
		cart.Clear()
	}
}
