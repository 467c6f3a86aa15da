// Package order holds the user's in-progress selection of items.
package order

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xenking/appetizers/internal/domain/appetizer"
)

// Order is a mutable ordered sequence of selected items. Adding the same
// item twice yields two distinct lines. Mutations replace the line slice
// wholesale, so readers always observe a consistent snapshot.
type Order struct {
	mu    sync.Mutex
	items []appetizer.Appetizer
}

// New returns an empty Order.
func New() *Order {
	return &Order{}
}

// Add appends an item as a new line at the end of the order.
func (o *Order) Add(a appetizer.Appetizer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := make([]appetizer.Appetizer, 0, len(o.items)+1)
	next = append(next, o.items...)
	next = append(next, a)
	o.items = next
}

// RemoveAt deletes the lines at the given zero-based positions in one step.
// Positions refer to the sequence before the deletion; duplicates and
// out-of-range positions are ignored.
func (o *Order) RemoveAt(positions ...int) {
	if len(positions) == 0 {
		return
	}

	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		drop[p] = struct{}{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	next := make([]appetizer.Appetizer, 0, len(o.items))
	for i, item := range o.items {
		if _, ok := drop[i]; ok {
			continue
		}
		next = append(next, item)
	}
	o.items = next
}

// Items returns a copy of the current line sequence.
func (o *Order) Items() []appetizer.Appetizer {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]appetizer.Appetizer, len(o.items))
	copy(out, o.items)
	return out
}

// TotalPrice is the sum of all line prices, recomputed from the current
// sequence on every call. Zero when the order is empty.
func (o *Order) TotalPrice() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()

	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Price)
	}
	return total
}

// ItemCount is the number of lines in the order.
func (o *Order) ItemCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}
