// Package cart implements the shopping cart: an ordered list of line items
// keyed by product name, a cached item count, and snapshot persistence.
package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem represents all units of a single named product in the cart.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
	Quantity  int
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// Cart is an ordered sequence of line items plus a cached count of all units.
// At most one line exists per distinct product name; adding the same name
// again increments its quantity. Count is kept redundantly so it can be
// persisted in its own slot, but every mutation updates it in lockstep with
// the items, so it never drifts from the sum of quantities.
type Cart struct {
	Items []LineItem
	Count int
}

// Add records one unit of the named product. An existing line with the same
// name has its quantity incremented; otherwise a new line is appended with
// quantity 1. Count always grows by exactly one.
func (c *Cart) Add(name string, unitPrice decimal.Decimal, imageURL string) {
	for i := range c.Items {
		if c.Items[i].Name == name {
			c.Items[i].Quantity++
			c.Count++
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		Name:      name,
		UnitPrice: unitPrice,
		ImageURL:  imageURL,
		Quantity:  1,
	})
	c.Count++
}

// Remove deletes the whole line at the given zero-based position, shifting
// later lines left, and subtracts the line's full quantity from Count.
// An out-of-range index is a silent no-op; it reports whether a line was
// removed.
func (c *Cart) Remove(index int) bool {
	if index < 0 || index >= len(c.Items) {
		return false
	}
	c.Count -= c.Items[index].Quantity
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return true
}

// Clear empties the cart and resets the count to zero.
func (c *Cart) Clear() {
	c.Items = nil
	c.Count = 0
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total returns the sum of all line totals, rounded to two decimal places.
// It is always recomputed, never stored.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.LineTotal())
	}
	return total.Round(2)
}
