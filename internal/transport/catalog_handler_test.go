package transport

import (
	"net/http"
	"slices"
	"testing"

	"ecofinds/internal/catalog"
	"ecofinds/internal/domain"
	"ecofinds/internal/service"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func browseIDs(t *testing.T, api *testAPI, query string) []int64 {
	t.Helper()
	w := api.do(http.MethodGet, "/api/products"+query, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/products%s: status %d body %s", query, w.Code, w.Body.String())
	}
	var result service.BrowseResult
	decodeBody(t, w, &result)
	if result.Count != len(result.Products) {
		t.Fatalf("count %d does not match %d products", result.Count, len(result.Products))
	}
	ids := make([]int64, 0, len(result.Products))
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCatalogHandler_BrowseDefaults(t *testing.T) {
	api := newTestAPI()

	if got := browseIDs(t, api, ""); !slices.Equal(got, []int64{3, 1, 2}) {
		t.Errorf("default browse = %v, want newest active listings [3 1 2]", got)
	}
}

func TestCatalogHandler_BrowseFiltersAndSorts(t *testing.T) {
	api := newTestAPI()

	cases := map[string][]int64{
		"?q=LEATHER":                          {1},
		"?category=Furniture":                 {2},
		"?category=All&sort=price-low":        {1, 2, 3},
		"?condition=Good&sort=price-high":     {3, 2},
		"?condition=Good&condition=Excellent": {3, 1, 2},
		"?min_price=100&max_price=450":        {3, 2},
		"?min_price=100&max_price=100":        {},
		"?sort=title":                         {3, 2, 1},
		"?q=12%20Pro":                         {3},
		"?q=%20%20":                           {},
		"?max_price=89.99&sort=oldest":        {1},
	}

	for query, want := range cases {
		t.Run(query, func(t *testing.T) {
			if got := browseIDs(t, api, query); !slices.Equal(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestCatalogHandler_BrowseActiveFilterCount(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/api/products?category=Books&condition=Good&condition=Fair&min_price=5&q=x", nil)
	var result service.BrowseResult
	decodeBody(t, w, &result)
	if result.ActiveFilters != 4 {
		t.Errorf("active filters = %d, want 4", result.ActiveFilters)
	}
}

func TestCatalogHandler_BrowseRejectsBadParameters(t *testing.T) {
	api := newTestAPI()

	cases := map[string][]string{
		"?sort=cheapest":                        {"sort"},
		"?condition=Mint":                       {"condition"},
		"?category=Toys":                        {"category"},
		"?min_price=-1":                         {"min_price"},
		"?max_price=abc":                        {"max_price"},
		"?min_price=50&max_price=10":            {"max_price"},
		"?sort=nope&condition=Worn&min_price=x": {"condition", "min_price", "sort"},
	}

	for query, want := range cases {
		t.Run(query, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/products"+query, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if got := validationFields(t, w); !slices.Equal(got, want) {
				t.Errorf("fields = %v, want %v", got, want)
			}
		})
	}
}

func TestProperty_BrowseNeverReturnsSoldListings(t *testing.T) {
	api := newTestAPI()
	sorts := domain.SortKeys()

	properties := gopter.NewProperties(nil)

	properties.Property("sold listings never reach the storefront", prop.ForAll(
		func(sortIdx int, search string) bool {
			w := api.do(http.MethodGet, "/api/products?sort="+string(sorts[sortIdx])+"&q="+search, nil)
			if w.Code != http.StatusOK {
				return false
			}
			var result service.BrowseResult
			decodeBody(t, w, &result)
			for _, p := range result.Products {
				if p.ID == 4 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(sorts)-1),
		gen.OneConstOf("", "leather", "bag", "crossbody"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCatalogHandler_Options(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/api/catalog/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var opts catalog.FilterOptions
	decodeBody(t, w, &opts)
	if len(opts.Categories) != 10 || opts.Categories[0] != domain.CategoryAll {
		t.Errorf("unexpected categories: %v", opts.Categories)
	}
	if len(opts.Conditions) != 5 || len(opts.Sort) != 5 {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/api/products/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var product domain.Product
	decodeBody(t, w, &product)
	if product.Title != "Retro Coffee Table" || product.Views != 1 {
		t.Errorf("unexpected product: %+v", product)
	}

	if w := api.do(http.MethodGet, "/api/products/404", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown product: status %d", w.Code)
	}
	if w := api.do(http.MethodGet, "/api/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d", w.Code)
	}
}

func TestCatalogHandler_CreateListing(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodPost, "/api/products", map[string]interface{}{
		"title":       "Acoustic Guitar",
		"description": "Yamaha acoustic guitar, perfect for beginners",
		"price":       "120.00",
		"category":    "Musical Instruments",
		"condition":   "Good",
		"images":      []string{"/img/guitar.png"},
		"seller":      "music_maven",
		"tags":        []string{"guitar", "yamaha"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}

	var product domain.Product
	decodeBody(t, w, &product)
	if product.ID == 0 || product.Status != domain.ListingActive || product.Image != "/img/guitar.png" {
		t.Errorf("unexpected listing: %+v", product)
	}

	if got := browseIDs(t, api, "?q=yamaha"); !slices.Equal(got, []int64{product.ID}) {
		t.Errorf("new listing should be browsable, got %v", got)
	}
}

func TestCatalogHandler_CreateListingValidation(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodPost, "/api/products", map[string]interface{}{
		"title":       "Broken",
		"description": "Bad listing",
		"price":       "12.5",
		"category":    "Toys",
		"condition":   "Mint",
		"images":      []string{"/img/x.png"},
		"seller":      "someone",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := validationFields(t, w); !slices.Equal(got, []string{"category", "condition"}) {
		t.Errorf("fields = %v", got)
	}

	w = api.do(http.MethodPost, "/api/products", map[string]interface{}{"title": "Only a title"})
	if w.Code != http.StatusBadRequest || len(validationFields(t, w)) == 0 {
		t.Errorf("missing fields should be reported, got %d", w.Code)
	}
}

func TestCatalogHandler_SellerListings(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/api/sellers/ecouser123/listings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var listings service.SellerListings
	decodeBody(t, w, &listings)
	if len(listings.Sold) != 1 || len(listings.Active) != 0 || listings.Stats.TotalViews != 67 {
		t.Errorf("unexpected listings: %+v", listings)
	}
}
