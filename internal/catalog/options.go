package catalog

import "ecofinds/internal/domain"

// SortOption pairs a sort key with its display label
type SortOption struct {
	Value domain.SortKey `json:"value"`
	Label string         `json:"label"`
}

// FilterOptions lists the values each browse control offers
type FilterOptions struct {
	Categories []domain.Category  `json:"categories"`
	Conditions []domain.Condition `json:"conditions"`
	Sort       []SortOption       `json:"sort"`
}

var sortLabels = map[domain.SortKey]string{
	domain.SortNewest:    "Newest First",
	domain.SortOldest:    "Oldest First",
	domain.SortPriceLow:  "Price: Low to High",
	domain.SortPriceHigh: "Price: High to Low",
	domain.SortTitle:     "Title A-Z",
}

func Options() FilterOptions {
	keys := domain.SortKeys()
	sorts := make([]SortOption, 0, len(keys))
	for _, k := range keys {
		sorts = append(sorts, SortOption{Value: k, Label: sortLabels[k]})
	}
	return FilterOptions{
		Categories: domain.BrowseCategories(),
		Conditions: domain.Conditions(),
		Sort:       sorts,
	}
}
