// Package pricing derives order totals from cart lines
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidRates = errors.New("invalid pricing rates")

// Rates are the order-level charges applied on top of the subtotal
type Rates struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultRates: 9.99 shipping, free above 100, 8% tax
func DefaultRates() Rates {
	return Rates{
		ShippingFee:           decimal.RequireFromString("9.99"),
		FreeShippingThreshold: decimal.NewFromInt(100),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Validate rejects negative charges
func (r Rates) Validate() error {
	switch {
	case r.ShippingFee.IsNegative():
		return fmt.Errorf("%w: shipping fee %s", ErrInvalidRates, r.ShippingFee)
	case r.FreeShippingThreshold.IsNegative():
		return fmt.Errorf("%w: free shipping threshold %s", ErrInvalidRates, r.FreeShippingThreshold)
	case r.TaxRate.IsNegative():
		return fmt.Errorf("%w: tax rate %s", ErrInvalidRates, r.TaxRate)
	}
	return nil
}

// Line is a unit price and how many units were ordered
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Summary is the priced breakdown of an order
type Summary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// MarshalJSON writes every amount with two decimal places, so 24.8 goes out as "24.80"
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ItemCount int    `json:"item_count"`
		Subtotal  string `json:"subtotal"`
		Shipping  string `json:"shipping"`
		Tax       string `json:"tax"`
		Total     string `json:"total"`
	}{
		ItemCount: s.ItemCount,
		Subtotal:  s.Subtotal.StringFixed(2),
		Shipping:  s.Shipping.StringFixed(2),
		Tax:       s.Tax.StringFixed(2),
		Total:     s.Total.StringFixed(2),
	})
}

// FreeShipping reports whether the shipping fee was waived
func (s Summary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

func (c *Calculator) Rates() Rates {
	return c.rates
}

// Calculate prices lines. Shipping is waived only when the subtotal is strictly
// above the threshold; tax is rounded to cents before it is added to the total.
func (c *Calculator) Calculate(lines []Line) Summary {
	subtotal := decimal.Zero
	items := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		items += l.Quantity
	}

	shipping := c.rates.ShippingFee
	if subtotal.GreaterThan(c.rates.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(c.rates.TaxRate).Round(2)

	return Summary{
		ItemCount: items,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal.Add(shipping).Add(tax),
	}
}
