package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecofinds/internal/domain"
)

var ErrEmptyOrder = errors.New("order has no purchases")

// PurchaseRepository defines the interface for purchase history data access
type PurchaseRepository interface {
	CreateOrder(ctx context.Context, purchases []domain.Purchase) error
	ListByBuyer(ctx context.Context, buyer string) ([]domain.Purchase, error)
}

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository
func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// CreateOrder stores every purchase of one order atomically and fills in their ids
func (r *purchaseRepository) CreateOrder(ctx context.Context, purchases []domain.Purchase) (err error) {
	if len(purchases) == 0 {
		return ErrEmptyOrder
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO purchases (order_id, buyer, product_id, title, description, price, category,
			condition, image_url, seller, quantity, purchased_at, status, tracking_number,
			delivered_at, estimated_delivery)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	for i := range purchases {
		p := &purchases[i]
		err = tx.QueryRowContext(
			ctx,
			query,
			p.OrderID,
			p.Buyer,
			p.ProductID,
			p.Title,
			p.Description,
			p.Price,
			string(p.Category),
			string(p.Condition),
			p.Image,
			p.Seller,
			p.Quantity,
			p.PurchaseDate,
			string(p.Status),
			p.TrackingNumber,
			p.DeliveryDate,
			p.EstimatedDelivery,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("failed to create purchase of product %d: %w", p.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// ListByBuyer returns a buyer's purchases, most recent first
func (r *purchaseRepository) ListByBuyer(ctx context.Context, buyer string) ([]domain.Purchase, error) {
	query := `
		SELECT id, order_id, buyer, product_id, title, description, price, category, condition,
			image_url, seller, quantity, purchased_at, status, tracking_number, delivered_at,
			estimated_delivery
		FROM purchases
		WHERE buyer = $1
		ORDER BY purchased_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, buyer)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		var (
			p                    domain.Purchase
			delivered, estimated sql.NullTime
		)
		err := rows.Scan(
			&p.ID,
			&p.OrderID,
			&p.Buyer,
			&p.ProductID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.Condition,
			&p.Image,
			&p.Seller,
			&p.Quantity,
			&p.PurchaseDate,
			&p.Status,
			&p.TrackingNumber,
			&delivered,
			&estimated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		p.PurchaseDate = domain.DateOf(p.PurchaseDate)
		p.DeliveryDate = dateOrNil(delivered)
		p.EstimatedDelivery = dateOrNil(estimated)
		purchases = append(purchases, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}

func dateOrNil(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	d := domain.DateOf(t.Time)
	return &d
}
