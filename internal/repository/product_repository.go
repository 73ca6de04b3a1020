package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ecofinds/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, seller string) ([]domain.Product, error)
	IncrementViews(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, title, description, price, category, condition, image_url, images,
		seller, posted_at, location, tags, status, views, likes`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p            domain.Product
		images, tags []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Condition,
		&p.Image,
		&images,
		&p.Seller,
		&p.PostedDate,
		&p.Location,
		&tags,
		&p.Status,
		&p.Views,
		&p.Likes,
	)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return p, fmt.Errorf("failed to decode images of product %d: %w", p.ID, err)
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return p, fmt.Errorf("failed to decode tags of product %d: %w", p.ID, err)
	}
	p.PostedDate = domain.DateOf(p.PostedDate)
	return p, nil
}

// Create inserts a new product and stores the generated id on it
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	images, err := json.Marshal(nonNil(product.Images))
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	tags, err := json.Marshal(nonNil(product.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO products (title, description, price, category, condition, image_url, images,
			seller, posted_at, location, tags, status, views, likes)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11::jsonb, $12, $13, $14)
		RETURNING id
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		product.Title,
		product.Description,
		product.Price,
		string(product.Category),
		string(product.Condition),
		product.Image,
		string(images),
		product.Seller,
		product.PostedDate,
		product.Location,
		string(tags),
		string(product.Status),
		product.Views,
		product.Likes,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return &product, nil
}

// List returns the whole catalog in id order
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.query(ctx, query)
}

// ListBySeller returns a seller's products, newest first
func (r *productRepository) ListBySeller(ctx context.Context, seller string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller = $1 ORDER BY posted_at DESC, id DESC`
	return r.query(ctx, query, seller)
}

func (r *productRepository) query(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// IncrementViews bumps the view counter of a product
func (r *productRepository) IncrementViews(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
