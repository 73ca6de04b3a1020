package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/pricing"
	"ecofinds/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EstimatedDeliveryDays is how far out a new order's delivery estimate lands
const EstimatedDeliveryDays = 7

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is not available for purchase")
)

// CartItem is a cart line joined with its product
type CartItem struct {
	Product   domain.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is a priced cart
type CartView struct {
	ID           uuid.UUID       `json:"id"`
	Items        []CartItem      `json:"items"`
	Summary      pricing.Summary `json:"summary"`
	FreeShipping bool            `json:"free_shipping"`
	Empty        bool            `json:"empty"`
}

// Order is the result of a checkout
type Order struct {
	OrderID   string            `json:"order_id"`
	Buyer     string            `json:"buyer"`
	Purchases []domain.Purchase `json:"purchases"`
	Summary   pricing.Summary   `json:"summary"`
}

// CartService defines the interface for cart business logic
type CartService interface {
	NewCart(ctx context.Context) (*CartView, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartView, error)
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) (*CartView, error)
	Checkout(ctx context.Context, cartID uuid.UUID, buyer string) (*Order, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	calculator   *pricing.Calculator
	logger       *zap.Logger
	now          func() time.Time
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	calculator *pricing.Calculator,
	logger *zap.Logger,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		calculator:   calculator,
		logger:       logger,
		now:          time.Now,
	}
}

// NewCart allocates a cart id. Nothing is stored until the first item is added.
func (s *cartService) NewCart(ctx context.Context) (*CartView, error) {
	return s.view(ctx, domain.NewCart(uuid.New()))
}

func (s *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*CartView, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem puts quantity units of an active product into the cart
func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: %q is %s", ErrProductUnavailable, product.Title, product.Status)
	}

	cart, err := s.cartRepo.Update(ctx, cartID, func(c *domain.Cart) error {
		return c.Add(productID, quantity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Item added to cart",
		zap.String("cart_id", cartID.String()),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	return s.view(ctx, cart)
}

// UpdateQuantity sets the quantity of a line; zero removes it
func (s *cartService) UpdateQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartView, error) {
	cart, err := s.cartRepo.Update(ctx, cartID, func(c *domain.Cart) error {
		return c.SetQuantity(productID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) (*CartView, error) {
	cart, err := s.cartRepo.Update(ctx, cartID, func(c *domain.Cart) error {
		if !c.Remove(productID) {
			return domain.ErrCartLineNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// Checkout turns the cart into an order of processing purchases and clears it
func (s *cartService) Checkout(ctx context.Context, cartID uuid.UUID, buyer string) (*Order, error) {
	buyer = strings.TrimSpace(buyer)
	if buyer == "" {
		return nil, domain.ValidationErrors{{Field: "buyer", Message: "is required"}}
	}

	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	today := domain.DateOf(s.now())
	estimated := today.AddDate(0, 0, EstimatedDeliveryDays)
	orderID, tracking := newOrderNumbers(today)

	purchases := make([]domain.Purchase, 0, len(cart.Lines))
	lines := make([]pricing.Line, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %d no longer exists", ErrProductUnavailable, line.ProductID)
			}
			return nil, err
		}
		if product.Status != domain.ListingActive {
			return nil, fmt.Errorf("%w: %q is %s", ErrProductUnavailable, product.Title, product.Status)
		}

		purchases = append(purchases, domain.Purchase{
			OrderID:           orderID,
			Buyer:             buyer,
			ProductID:         product.ID,
			Title:             product.Title,
			Description:       product.Description,
			Price:             product.Price,
			Category:          product.Category,
			Condition:         product.Condition,
			Image:             product.Image,
			Seller:            product.Seller,
			Quantity:          line.Quantity,
			PurchaseDate:      today,
			Status:            domain.PurchaseProcessing,
			TrackingNumber:    tracking,
			EstimatedDelivery: &estimated,
		})
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: line.Quantity})
	}

	if err := s.purchaseRepo.CreateOrder(ctx, purchases); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	summary := s.calculator.Calculate(lines)

	// The order is already committed, so a stale cart is only logged
	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("cart_id", cartID.String()),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", orderID),
		zap.String("buyer", buyer),
		zap.Int("items", summary.ItemCount),
		zap.String("total", summary.Total.StringFixed(2)),
	)

	return &Order{
		OrderID:   orderID,
		Buyer:     buyer,
		Purchases: purchases,
		Summary:   summary,
	}, nil
}

// view joins cart lines with their products and prices them. Lines whose
// product has disappeared are dropped from the stored cart as well.
func (s *cartService) view(ctx context.Context, cart *domain.Cart) (*CartView, error) {
	items := make([]CartItem, 0, len(cart.Lines))
	lines := make([]pricing.Line, 0, len(cart.Lines))
	var missing []int64

	for _, line := range cart.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				missing = append(missing, line.ProductID)
				continue
			}
			return nil, err
		}
		items = append(items, CartItem{
			Product:   *product,
			Quantity:  line.Quantity,
			LineTotal: product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: line.Quantity})
	}

	if len(missing) > 0 {
		s.pruneLines(ctx, cart.ID, missing)
	}

	summary := s.calculator.Calculate(lines)

	return &CartView{
		ID:           cart.ID,
		Items:        items,
		Summary:      summary,
		FreeShipping: len(items) > 0 && summary.FreeShipping(),
		Empty:        len(items) == 0,
	}, nil
}

// pruneLines removes lines for deleted products. The view is already correct
// without them, so a failed write is only logged.
func (s *cartService) pruneLines(ctx context.Context, cartID uuid.UUID, productIDs []int64) {
	_, err := s.cartRepo.Update(ctx, cartID, func(c *domain.Cart) error {
		for _, id := range productIDs {
			c.Remove(id)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to prune deleted products from cart",
			zap.String("cart_id", cartID.String()),
			zap.Int64s("product_ids", productIDs),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Pruned deleted products from cart",
		zap.String("cart_id", cartID.String()),
		zap.Int64s("product_ids", productIDs),
	)
}

func newOrderNumbers(day time.Time) (orderID, tracking string) {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ECO-%s-%s", day.Format("20060102"), token[:6]), "EF" + token[6:18]
}
