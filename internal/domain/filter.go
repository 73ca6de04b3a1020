package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey selects the ordering of a catalog query
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortTitle     SortKey = "title"
)

var sortKeys = []SortKey{SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortTitle}

// SortKeys returns every supported sort key in display order
func SortKeys() []SortKey {
	out := make([]SortKey, len(sortKeys))
	copy(out, sortKeys)
	return out
}

// ParseSortKey returns the sort key named by s
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// PriceRange is an inclusive price interval. A nil Max has no upper bound.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// Contains reports whether price lies within the range
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || !price.GreaterThan(*r.Max)
}

// Constrained reports whether the range excludes any non-negative price
func (r PriceRange) Constrained() bool {
	return r.Min.IsPositive() || r.Max != nil
}

// FilterState is one browse request: the predicates to apply and the ordering
type FilterState struct {
	Search     string
	Category   Category
	Conditions map[Condition]struct{}
	Price      PriceRange
	Sort       SortKey
}

// DefaultFilterState is the cleared state: everything matches, newest first
func DefaultFilterState() FilterState {
	return FilterState{
		Category:   CategoryAll,
		Conditions: map[Condition]struct{}{},
		Price:      PriceRange{Min: decimal.Zero},
		Sort:       SortNewest,
	}
}

// WithConditions returns a copy of f selecting exactly the given conditions
func (f FilterState) WithConditions(conditions ...Condition) FilterState {
	set := make(map[Condition]struct{}, len(conditions))
	for _, c := range conditions {
		set[c] = struct{}{}
	}
	f.Conditions = set
	return f
}

// ActiveFilterCount counts the constraints a user has switched on.
// Search text and sort order are not counted.
func (f FilterState) ActiveFilterCount() int {
	n := len(f.Conditions)
	if f.Category != "" && f.Category != CategoryAll {
		n++
	}
	if f.Price.Constrained() {
		n++
	}
	return n
}
