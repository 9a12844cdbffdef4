package models

import "github.com/shopspring/decimal"

// CartLine is a product and the quantity of it a customer intends to buy.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the set of lines held in a customer session.
// A Cart is not safe for concurrent use; stores hand out independent copies.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
}

// NewCart returns an empty cart bound to the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// AddItem adds quantity units of the product, merging with an existing line.
func (c *Cart) AddItem(product Product, quantity int) {
	if line := c.FindLine(product.ID); line != nil {
		line.Quantity += quantity
		line.Price = product.Price
		line.Name = product.Name
		return
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	})
}

// RemoveProduct drops every line for the product and reports whether any was removed.
func (c *Cart) RemoveProduct(productID string) bool {
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(c.Lines)
	c.Lines = kept
	return removed
}

// FindLine returns the line for the product, or nil.
func (c *Cart) FindLine(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity is the number of units across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// TotalValue is the sum of price times quantity over all lines.
func (c *Cart) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// AverageValue is the total value divided by the number of units, zero when empty.
func (c *Cart) AverageValue() decimal.Decimal {
	qty := c.TotalQuantity()
	if qty == 0 {
		return decimal.Zero
	}
	return c.TotalValue().Div(decimal.NewFromInt(int64(qty)))
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return &Cart{SessionID: c.SessionID, Lines: lines}
}
