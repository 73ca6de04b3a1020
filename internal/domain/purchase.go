package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus is the fulfilment state of a purchased item
type PurchaseStatus string

const (
	PurchaseProcessing PurchaseStatus = "Processing"
	PurchaseInTransit  PurchaseStatus = "In Transit"
	PurchaseDelivered  PurchaseStatus = "Delivered"
)

// ParsePurchaseStatus returns the status named by s
func ParsePurchaseStatus(s string) (PurchaseStatus, bool) {
	switch PurchaseStatus(s) {
	case PurchaseProcessing, PurchaseInTransit, PurchaseDelivered:
		return PurchaseStatus(s), true
	}
	return "", false
}

// Purchase is one product bought as part of an order.
// Product fields are snapshotted at checkout time.
type Purchase struct {
	ID                int64           `json:"id"`
	OrderID           string          `json:"order_id"`
	Buyer             string          `json:"buyer"`
	ProductID         int64           `json:"product_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Category          Category        `json:"category"`
	Condition         Condition       `json:"condition"`
	Image             string          `json:"image"`
	Seller            string          `json:"seller"`
	Quantity          int             `json:"quantity"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Status            PurchaseStatus  `json:"status"`
	TrackingNumber    string          `json:"tracking_number"`
	DeliveryDate      *time.Time      `json:"delivery_date,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
}

// PurchaseSummary aggregates a buyer's purchase history
type PurchaseSummary struct {
	TotalOrders int             `json:"total_orders"`
	Delivered   int             `json:"delivered"`
	InTransit   int             `json:"in_transit"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

// SummarizePurchases counts purchases by status and totals what was spent
func SummarizePurchases(purchases []Purchase) PurchaseSummary {
	s := PurchaseSummary{TotalOrders: len(purchases), TotalSpent: decimal.Zero}
	for _, p := range purchases {
		switch p.Status {
		case PurchaseDelivered:
			s.Delivered++
		case PurchaseInTransit:
			s.InTransit++
		}
		s.TotalSpent = s.TotalSpent.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return s
}

// FilterPurchases keeps the purchases with the given status
func FilterPurchases(purchases []Purchase, status PurchaseStatus) []Purchase {
	out := make([]Purchase, 0, len(purchases))
	for _, p := range purchases {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// ListingStats aggregates a seller's listings
type ListingStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Sold       int `json:"sold"`
	TotalViews int `json:"total_views"`
}

// SummarizeListings counts a seller's products by status and totals their views
func SummarizeListings(products []Product) ListingStats {
	s := ListingStats{Total: len(products)}
	for _, p := range products {
		switch p.Status {
		case ListingActive:
			s.Active++
		case ListingSold:
			s.Sold++
		}
		s.TotalViews += p.Views
	}
	return s
}
