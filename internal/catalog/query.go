// Package catalog filters and orders product snapshots for browsing
package catalog

import (
	"slices"
	"strings"

	"ecofinds/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query returns the products matching every active predicate of f, ordered by f.Sort.
// The input slice is left untouched.
func Query(products []domain.Product, f domain.FilterState) []domain.Product {
	search := strings.ToLower(f.Search)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesSearch(p, search) &&
			matchesCategory(p, f.Category) &&
			matchesCondition(p, f.Conditions) &&
			f.Price.Contains(p.Price) {
			result = append(result, p)
		}
	}

	if cmp := comparator(f.Sort); cmp != nil {
		slices.SortStableFunc(result, cmp)
	}
	return result
}

// matchesSearch expects needle already lowercased
func matchesSearch(p domain.Product, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func matchesCategory(p domain.Product, category domain.Category) bool {
	return category == "" || category == domain.CategoryAll || p.Category == category
}

// An empty set places no constraint
func matchesCondition(p domain.Product, conditions map[domain.Condition]struct{}) bool {
	if len(conditions) == 0 {
		return true
	}
	_, ok := conditions[p.Condition]
	return ok
}

func comparator(key domain.SortKey) func(a, b domain.Product) int {
	switch key {
	case domain.SortNewest:
		return func(a, b domain.Product) int { return b.PostedDate.Compare(a.PostedDate) }
	case domain.SortOldest:
		return func(a, b domain.Product) int { return a.PostedDate.Compare(b.PostedDate) }
	case domain.SortPriceLow:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceHigh:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortTitle:
		// Collators keep scratch buffers, so each query gets its own.
		c := collate.New(language.English)
		return func(a, b domain.Product) int { return c.CompareString(a.Title, b.Title) }
	default:
		return nil
	}
}
