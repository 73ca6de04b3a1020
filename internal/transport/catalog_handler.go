package transport

import (
	"net/http"
	"strconv"

	"ecofinds/internal/catalog"
	"ecofinds/internal/domain"
	"ecofinds/internal/middleware"
	"ecofinds/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateListingRequest represents the new listing payload
type CreateListingRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required"`
	Condition   string          `json:"condition" validate:"required"`
	Images      []string        `json:"images" validate:"required,min=1,max=10,dive,max=500"`
	Seller      string          `json:"seller" validate:"required,max=50"`
	Location    string          `json:"location" validate:"max=100"`
	Tags        []string        `json:"tags" validate:"max=20,dive,max=50"`
}

// CatalogHandler handles HTTP requests for browsing and listing products
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/catalog/options", h.Options)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Post("/", h.CreateListing)
		r.Get("/{id}", h.GetProduct)
	})
	r.Get("/api/sellers/{seller}/listings", h.SellerListings)
}

// Options lists the values the browse controls offer
func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, catalog.Options())
}

// Browse filters and sorts the active catalog
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseFilter(r.URL.Query())
	if len(errs) > 0 {
		h.logger.Debug("Invalid browse parameters", zap.String("query", r.URL.RawQuery))
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result, err := h.catalogService.Browse(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, h.logger, "Browse failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct returns one product and counts the view
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, "Get product failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateListing stores a new active listing
func (h *CatalogHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	// NewProduct reports unknown categories and conditions as field errors
	product, err := h.catalogService.CreateListing(r.Context(), domain.ProductDraft{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.Category(req.Category),
		Condition:   domain.Condition(req.Condition),
		Images:      req.Images,
		Seller:      req.Seller,
		Location:    req.Location,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithServiceError(w, h.logger, "Create listing failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// SellerListings returns a seller's dashboard
func (h *CatalogHandler) SellerListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.catalogService.SellerListings(r.Context(), chi.URLParam(r, "seller"))
	if err != nil {
		respondWithServiceError(w, h.logger, "Seller listings failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, listings)
}

// productIDParam parses a positive integer URL parameter, answering 400 when it is not one
func productIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: name, Message: "must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}
