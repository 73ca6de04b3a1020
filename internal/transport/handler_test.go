package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/pricing"
	"ecofinds/internal/repository"
	"ecofinds/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// In-memory repositories backing the real services
type memProducts struct {
	products map[int64]*domain.Product
	nextID   int64
}

func (m *memProducts) Create(ctx context.Context, p *domain.Product) error {
	m.nextID++
	p.ID = m.nextID
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *memProducts) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (m *memProducts) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range m.products {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memProducts) ListBySeller(ctx context.Context, seller string) ([]domain.Product, error) {
	all, _ := m.List(ctx)
	out := []domain.Product{}
	for _, p := range all {
		if p.Seller == seller {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) IncrementViews(ctx context.Context, id int64) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Views++
	return nil
}

type memCarts struct {
	carts map[uuid.UUID]domain.Cart
}

func (m *memCarts) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return domain.NewCart(id), nil
	}
	c.Lines = slices.Clone(c.Lines)
	return &c, nil
}

func (m *memCarts) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	c, _ := m.Get(ctx, id)
	if err := fn(c); err != nil {
		return nil, err
	}
	stored := *c
	stored.Lines = slices.Clone(c.Lines)
	m.carts[id] = stored
	return c, nil
}

func (m *memCarts) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.carts, id)
	return nil
}

type memPurchases struct {
	purchases []domain.Purchase
}

func (m *memPurchases) CreateOrder(ctx context.Context, purchases []domain.Purchase) error {
	m.purchases = append(m.purchases, purchases...)
	return nil
}

func (m *memPurchases) ListByBuyer(ctx context.Context, buyer string) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	for _, p := range m.purchases {
		if p.Buyer == buyer {
			out = append(out, p)
		}
	}
	return out, nil
}

type memProfiles struct {
	profiles map[string]domain.Profile
}

func (m *memProfiles) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	p, ok := m.profiles[username]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (m *memProfiles) Update(ctx context.Context, p *domain.Profile) error {
	m.profiles[p.Username] = *p
	return nil
}

type testAPI struct {
	router    chi.Router
	products  *memProducts
	carts     *memCarts
	purchases *memPurchases
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func seedProducts() map[int64]*domain.Product {
	products := []domain.Product{
		{ID: 1, Title: "Vintage Leather Jacket", Description: "Classic brown leather jacket", Price: decimal.RequireFromString("89.99"),
			Category: domain.CategoryClothing, Condition: domain.ConditionExcellent, Image: "/img/1.png", Seller: "fashionista_eco",
			PostedDate: day(1, 20), Tags: []string{"vintage", "leather"}, Status: domain.ListingActive},
		{ID: 2, Title: "Retro Coffee Table", Description: "Mid-century modern coffee table", Price: decimal.RequireFromString("150.00"),
			Category: domain.CategoryFurniture, Condition: domain.ConditionGood, Image: "/img/2.png", Seller: "vintage_home",
			PostedDate: day(1, 18), Tags: []string{"retro"}, Status: domain.ListingActive},
		{ID: 3, Title: "iPhone 12 Pro", Description: "Unlocked, minor scratches", Price: decimal.RequireFromString("450.00"),
			Category: domain.CategoryElectronics, Condition: domain.ConditionGood, Image: "/img/3.png", Seller: "tech_saver",
			PostedDate: day(1, 22), Tags: []string{"apple"}, Status: domain.ListingActive},
		{ID: 4, Title: "Leather Crossbody Bag", Description: "Tan crossbody bag", Price: decimal.RequireFromString("60.00"),
			Category: domain.CategoryAccessories, Condition: domain.ConditionVeryGood, Image: "/img/4.png", Seller: "ecouser123",
			PostedDate: day(1, 5), Status: domain.ListingSold, Views: 67},
	}
	out := make(map[int64]*domain.Product, len(products))
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out
}

func newTestAPI() *testAPI {
	logger := zap.NewNop()
	api := &testAPI{
		products:  &memProducts{products: seedProducts(), nextID: 100},
		carts:     &memCarts{carts: make(map[uuid.UUID]domain.Cart)},
		purchases: &memPurchases{},
	}
	profiles := &memProfiles{profiles: map[string]domain.Profile{
		"ecouser123": {Username: "ecouser123", Email: "user@example.com", FullName: "Alex Johnson", JoinedAt: day(3, 1)},
	}}

	catalogService := service.NewCatalogService(api.products, logger)
	cartService := service.NewCartService(api.carts, api.products, api.purchases, pricing.NewCalculator(pricing.DefaultRates()), logger)

	r := chi.NewRouter()
	NewCatalogHandler(catalogService, logger).RegisterRoutes(r)
	NewCartHandler(cartService, logger).RegisterRoutes(r)
	NewUserHandler(service.NewPurchaseService(api.purchases), service.NewProfileService(profiles, logger), logger).RegisterRoutes(r)
	api.router = r
	return api
}

func (a *testAPI) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
}

// validationFields extracts the field names of a 400 validation response
func validationFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp struct {
		Error struct {
			Details struct {
				ValidationErrors []domain.FieldError `json:"validation_errors"`
			} `json:"details"`
		} `json:"error"`
	}
	decodeBody(t, w, &resp)
	fields := make([]string, 0, len(resp.Error.Details.ValidationErrors))
	for _, fe := range resp.Error.Details.ValidationErrors {
		fields = append(fields, fe.Field)
	}
	return fields
}
