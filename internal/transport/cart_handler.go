package transport

import (
	"net/http"

	"ecofinds/internal/middleware"
	"ecofinds/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

// UpdateQuantityRequest sets a line's quantity; 0 removes the line
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

// CheckoutRequest names the buyer placing the order
type CheckoutRequest struct {
	Buyer string `json:"buyer" validate:"required,max=50"`
}

// CartHandler handles HTTP requests for carts and checkout
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/carts", func(r chi.Router) {
		r.Post("/", h.NewCart)
		r.Route("/{cartID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.UpdateQuantity)
			r.Delete("/items/{productID}", h.RemoveItem)
			r.Post("/checkout", h.Checkout)
		})
	})
}

func (h *CartHandler) NewCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartService.NewCart(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "New cart failed", err)
		return
	}

	w.Header().Set("Location", "/api/carts/"+view.ID.String())
	middleware.RespondWithJSON(w, http.StatusCreated, view)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.cartService.GetCart(r.Context(), cartID)
	if err != nil {
		respondWithServiceError(w, h.logger, "Get cart failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDParam(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.cartService.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, "Add item failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDParam(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	view, err := h.cartService.UpdateQuantity(r.Context(), cartID, productID, *req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, "Update quantity failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDParam(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		respondWithServiceError(w, h.logger, "Remove item failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// Checkout places the order and empties the cart
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDParam(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	order, err := h.cartService.Checkout(r.Context(), cartID, req.Buyer)
	if err != nil {
		respondWithServiceError(w, h.logger, "Checkout failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func cartIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "cartID"))
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "cartID", Message: "must be a UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}
