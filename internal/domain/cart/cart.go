package cart

import (
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// LineItem is one cart line. Identity is SellableID: repeated adds of the
// same sellable increment Quantity instead of appending a second line.
type LineItem struct {
	SellableID string
	Name       string
	SKU        string
	UnitPrice  money.Money
	Quantity   int
}

func (l LineItem) Total() money.Money {
	return l.UnitPrice.MulQty(l.Quantity)
}

// Cart is an ordered collection of line items, insertion order preserved
// for display. It performs no I/O; callers re-render after mutations.
type Cart struct {
	lines []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Add(s catalog.Sellable, qty int) error {
	if s.VariantID == "" {
		return domainErrors.ErrInvalidItem
	}
	if s.UnitPrice.IsNegative() {
		return domainErrors.ErrInvalidItem
	}
	if qty < 1 {
		qty = 1
	}

	for i := range c.lines {
		if c.lines[i].SellableID == s.VariantID {
			c.lines[i].Quantity += qty
			return nil
		}
	}

	c.lines = append(c.lines, LineItem{
		SellableID: s.VariantID,
		Name:       s.ProductName,
		SKU:        s.SKU,
		UnitPrice:  s.UnitPrice,
		Quantity:   qty,
	})
	return nil
}

// SetQuantity sets a line's quantity. Zero or negative removes the line.
func (c *Cart) SetQuantity(sellableID string, qty int) {
	if qty <= 0 {
		c.Remove(sellableID)
		return
	}
	for i := range c.lines {
		if c.lines[i].SellableID == sellableID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes a line. A no-op when the sellable is not in the cart.
func (c *Cart) Remove(sellableID string) {
	for i := range c.lines {
		if c.lines[i].SellableID == sellableID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Subtotal() money.Money {
	var total money.Money
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}
