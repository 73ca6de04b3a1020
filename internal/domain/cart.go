package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// MaxLineQuantity caps how many units of one product a cart line may hold
const MaxLineQuantity = 99

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCartLineNotFound = errors.New("product is not in the cart")
)

// CartLine references a product and how many of it the cart holds
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart is an ordered set of lines, at most one per product.
// A line with quantity 0 is never kept.
type Cart struct {
	ID    uuid.UUID  `json:"id"`
	Lines []CartLine `json:"lines"`
}

// NewCart returns an empty cart with the given id
func NewCart(id uuid.UUID) *Cart {
	return &Cart{ID: id, Lines: []CartLine{}}
}

func (c *Cart) index(productID int64) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts qty more of a product into the cart
func (c *Cart) Add(productID int64, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: add requires at least 1, got %d", ErrInvalidQuantity, qty)
	}
	i := c.index(productID)
	current := 0
	if i >= 0 {
		current = c.Lines[i].Quantity
	}
	if current+qty > MaxLineQuantity {
		return fmt.Errorf("%w: %d more would exceed %d per product, cart holds %d",
			ErrInvalidQuantity, qty, MaxLineQuantity, current)
	}
	if i >= 0 {
		c.Lines[i].Quantity += qty
		return nil
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity replaces the quantity of an existing line. Zero removes the line.
func (c *Cart) SetQuantity(productID int64, qty int) error {
	if qty < 0 || qty > MaxLineQuantity {
		return fmt.Errorf("%w: must be between 0 and %d, got %d", ErrInvalidQuantity, MaxLineQuantity, qty)
	}
	i := c.index(productID)
	if i < 0 {
		return ErrCartLineNotFound
	}
	if qty == 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	c.Lines[i].Quantity = qty
	return nil
}

// Remove drops the line for productID and reports whether it was present
func (c *Cart) Remove(productID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// Quantity returns how many of productID the cart holds
func (c *Cart) Quantity(productID int64) int {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// ItemCount is the total number of units across all lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
