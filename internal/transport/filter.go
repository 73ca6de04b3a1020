package transport

import (
	"net/url"
	"strings"

	"ecofinds/internal/domain"
	"ecofinds/internal/middleware"

	"github.com/shopspring/decimal"
)

// parseFilter builds a FilterState from browse query parameters. Omitted
// parameters keep their defaults; every bad parameter is reported.
func parseFilter(q url.Values) (domain.FilterState, []middleware.ValidationError) {
	f := domain.DefaultFilterState()
	var errs []middleware.ValidationError

	f.Search = q.Get("q")

	if raw := q.Get("category"); raw != "" {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "category", Message: "unknown category " + raw})
		} else {
			f.Category = c
		}
	}

	var conditions []domain.Condition
	for _, raw := range q["condition"] {
		c, err := domain.ParseCondition(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "condition", Message: "unknown condition " + raw})
			continue
		}
		conditions = append(conditions, c)
	}
	f = f.WithConditions(conditions...)

	if floor, ok := parseAmount(q, "min_price", &errs); ok {
		f.Price.Min = floor
	}
	if ceiling, ok := parseAmount(q, "max_price", &errs); ok {
		f.Price.Max = &ceiling
		if ceiling.LessThan(f.Price.Min) {
			errs = append(errs, middleware.ValidationError{Field: "max_price", Message: "must not be below min_price"})
		}
	}

	if raw := q.Get("sort"); raw != "" {
		key, err := domain.ParseSortKey(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "sort", Message: "unknown sort key " + raw})
		} else {
			f.Sort = key
		}
	}

	return f, errs
}

func parseAmount(q url.Values, name string, errs *[]middleware.ValidationError) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*errs = append(*errs, middleware.ValidationError{Field: name, Message: "must be a number"})
		return decimal.Zero, false
	}
	if d.IsNegative() {
		*errs = append(*errs, middleware.ValidationError{Field: name, Message: "must not be negative"})
		return decimal.Zero, false
	}
	return d, true
}
