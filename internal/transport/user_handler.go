package transport

import (
	"net/http"

	"ecofinds/internal/domain"
	"ecofinds/internal/middleware"
	"ecofinds/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for a member's purchases and profile
type UserHandler struct {
	purchaseService service.PurchaseService
	profileService  service.ProfileService
	logger          *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(purchaseService service.PurchaseService, profileService service.ProfileService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		purchaseService: purchaseService,
		profileService:  profileService,
		logger:          logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/purchases", h.Purchases)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
	})
}

// Purchases returns the purchase history, optionally narrowed by ?status=
func (h *UserHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	var status *domain.PurchaseStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, ok := domain.ParsePurchaseStatus(raw)
		if !ok {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "status", Message: "unknown purchase status " + raw},
			})
			return
		}
		status = &s
	}

	history, err := h.purchaseService.History(r.Context(), chi.URLParam(r, "username"), status)
	if err != nil {
		respondWithServiceError(w, h.logger, "Purchase history failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, history)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondWithServiceError(w, h.logger, "Get profile failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfile replaces the editable profile fields
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdate
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), chi.URLParam(r, "username"), req)
	if err != nil {
		respondWithServiceError(w, h.logger, "Update profile failed", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profile)
}
