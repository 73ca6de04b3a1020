package service

import (
	"context"
	"fmt"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

// PurchaseHistory is a buyer's purchase list plus statistics over all of it
type PurchaseHistory struct {
	Buyer     string                 `json:"buyer"`
	Purchases []domain.Purchase      `json:"purchases"`
	Summary   domain.PurchaseSummary `json:"summary"`
}

// PurchaseService defines the interface for purchase history
type PurchaseService interface {
	History(ctx context.Context, buyer string, status *domain.PurchaseStatus) (*PurchaseHistory, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseService creates a new instance of PurchaseService
func NewPurchaseService(purchaseRepo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo}
}

// History returns a buyer's purchases, newest first. A non-nil status narrows
// the list; the summary always covers every purchase.
func (s *purchaseService) History(ctx context.Context, buyer string, status *domain.PurchaseStatus) (*PurchaseHistory, error) {
	purchases, err := s.purchaseRepo.ListByBuyer(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	history := &PurchaseHistory{
		Buyer:     buyer,
		Purchases: purchases,
		Summary:   domain.SummarizePurchases(purchases),
	}
	if status != nil {
		history.Purchases = domain.FilterPurchases(purchases, *status)
	}

	return history, nil
}
