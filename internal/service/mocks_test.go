package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mock repositories for testing
type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[int64]*domain.Product), nextID: 100}
	for i := range products {
		p := products[i]
		m.products[p.ID] = &p
	}
	return m
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *mockProductRepository) ListBySeller(ctx context.Context, seller string) ([]domain.Product, error) {
	all, _ := m.List(ctx)
	out := []domain.Product{}
	for _, p := range all {
		if p.Seller == seller {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) IncrementViews(ctx context.Context, id int64) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Views++
	return nil
}

type mockCartRepository struct {
	carts map[uuid.UUID]domain.Cart
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[uuid.UUID]domain.Cart)}
}

func (m *mockCartRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return domain.NewCart(id), nil
	}
	c.Lines = slices.Clone(c.Lines)
	return &c, nil
}

func (m *mockCartRepository) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	cart, _ := m.Get(ctx, id)
	if err := fn(cart); err != nil {
		return nil, err
	}
	stored := *cart
	stored.Lines = slices.Clone(cart.Lines)
	m.carts[id] = stored
	return cart, nil
}

func (m *mockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.carts, id)
	return nil
}

type mockPurchaseRepository struct {
	purchases []domain.Purchase
	failWith  error
}

func (m *mockPurchaseRepository) CreateOrder(ctx context.Context, purchases []domain.Purchase) error {
	if m.failWith != nil {
		return m.failWith
	}
	if len(purchases) == 0 {
		return repository.ErrEmptyOrder
	}
	for i := range purchases {
		purchases[i].ID = int64(len(m.purchases) + 1)
		m.purchases = append(m.purchases, purchases[i])
	}
	return nil
}

func (m *mockPurchaseRepository) ListByBuyer(ctx context.Context, buyer string) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	for _, p := range m.purchases {
		if p.Buyer == buyer {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Purchase) int { return b.PurchaseDate.Compare(a.PurchaseDate) })
	return out, nil
}

type mockProfileRepository struct {
	profiles map[string]domain.Profile
}

func (m *mockProfileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	p, ok := m.profiles[username]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := m.profiles[profile.Username]; !ok {
		return domain.ErrProfileNotFound
	}
	m.profiles[profile.Username] = *profile
	return nil
}

var errStoreDown = errors.New("store unavailable")

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Vintage Leather Jacket", Description: "Classic brown leather jacket", Price: money("89.99"),
			Category: domain.CategoryClothing, Condition: domain.ConditionExcellent, Image: "/img/1.png",
			Seller: "fashionista_eco", PostedDate: day(1, 20), Tags: []string{"leather"}, Status: domain.ListingActive},
		{ID: 2, Title: "Retro Coffee Table", Description: "Mid-century modern coffee table", Price: money("150.00"),
			Category: domain.CategoryFurniture, Condition: domain.ConditionGood, Image: "/img/2.png",
			Seller: "vintage_home", PostedDate: day(1, 18), Tags: []string{"retro"}, Status: domain.ListingActive},
		{ID: 3, Title: "iPhone 12 Pro", Description: "Unlocked, 128GB", Price: money("450.00"),
			Category: domain.CategoryElectronics, Condition: domain.ConditionGood, Image: "/img/3.png",
			Seller: "tech_saver", PostedDate: day(1, 22), Tags: []string{"apple"}, Status: domain.ListingActive},
		{ID: 4, Title: "Hardcover Book Collection", Description: "Set of 15 classic literature books", Price: money("35.00"),
			Category: domain.CategoryBooks, Condition: domain.ConditionVeryGood, Image: "/img/4.png",
			Seller: "book_lover", PostedDate: day(1, 15), Tags: []string{"books"}, Status: domain.ListingActive},
		{ID: 5, Title: "Leather Crossbody Bag", Description: "Tan crossbody bag", Price: money("60.00"),
			Category: domain.CategoryAccessories, Condition: domain.ConditionVeryGood, Image: "/img/5.png",
			Seller: "book_lover", PostedDate: day(1, 5), Status: domain.ListingSold, Views: 67},
	}
}
