package service

import (
	"context"
	"fmt"
	"time"

	"ecofinds/internal/catalog"
	"ecofinds/internal/domain"
	"ecofinds/internal/repository"

	"go.uber.org/zap"
)

// BrowseResult is one page of the catalog view
type BrowseResult struct {
	Products      []domain.Product `json:"products"`
	Count         int              `json:"count"`
	ActiveFilters int              `json:"active_filters"`
}

// SellerListings is a seller's dashboard: listings split by status plus stats
type SellerListings struct {
	Seller string              `json:"seller"`
	Active []domain.Product    `json:"active"`
	Sold   []domain.Product    `json:"sold"`
	Stats  domain.ListingStats `json:"stats"`
}

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	Browse(ctx context.Context, filter domain.FilterState) (*BrowseResult, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateListing(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	SellerListings(ctx context.Context, seller string) (*SellerListings, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Browse queries the active listings with the given filter
func (s *catalogService) Browse(ctx context.Context, filter domain.FilterState) (*BrowseResult, error) {
	all, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Sold listings stay on the seller dashboard but leave the storefront
	snapshot := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Status == domain.ListingActive {
			snapshot = append(snapshot, p)
		}
	}

	products := catalog.Query(snapshot, filter)

	return &BrowseResult{
		Products:      products,
		Count:         len(products),
		ActiveFilters: filter.ActiveFilterCount(),
	}, nil
}

// GetProduct returns a product and records the view
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	product.Views++

	return product, nil
}

// CreateListing validates a draft and stores it as an active listing posted today
func (s *catalogService) CreateListing(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	draft.PostedDate = s.now()

	product, err := domain.NewProduct(draft)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.logger.Info("Listing created",
		zap.Int64("product_id", product.ID),
		zap.String("seller", product.Seller),
		zap.String("category", string(product.Category)),
	)

	return product, nil
}

// SellerListings splits a seller's products into active and sold
func (s *catalogService) SellerListings(ctx context.Context, seller string) (*SellerListings, error) {
	products, err := s.productRepo.ListBySeller(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	out := &SellerListings{
		Seller: seller,
		Active: []domain.Product{},
		Sold:   []domain.Product{},
		Stats:  domain.SummarizeListings(products),
	}
	for _, p := range products {
		if p.Status == domain.ListingSold {
			out.Sold = append(out.Sold, p)
		} else {
			out.Active = append(out.Active, p)
		}
	}

	return out, nil
}
