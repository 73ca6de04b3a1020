package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecofinds/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrCartConflict = errors.New("cart was modified concurrently")
)

const (
	cartKeyPrefix   = "cart"
	maxCartAttempts = 5
)

// CartRepository stores shopping carts
type CartRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed CartRepository. Every write pushes
// the expiry of the cart ttl into the future.
func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", cartKeyPrefix, id)
}

type cartReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadCart(ctx context.Context, r cartReader, id uuid.UUID) (*domain.Cart, error) {
	data, err := r.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	cart.ID = id
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return cart, nil
}

// Get returns the stored cart, or an empty one if none exists
func (r *cartRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	return loadCart(ctx, r.client, id)
}

// Update applies fn to the current cart and saves the result. The write is
// discarded and retried if another client changed the cart in the meantime.
func (r *cartRepository) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	key := cartKey(id)
	var updated *domain.Cart

	txf := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		data, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = cart
		return nil
	}

	for attempt := 0; attempt < maxCartAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}

	return nil, ErrCartConflict
}

// Delete removes a cart. Deleting an unknown cart is not an error.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
