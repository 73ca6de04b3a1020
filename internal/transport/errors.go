package transport

import (
	"errors"
	"net/http"

	"ecofinds/internal/domain"
	"ecofinds/internal/middleware"
	"ecofinds/internal/repository"
	"ecofinds/internal/service"

	"go.uber.org/zap"
)

// statusFor maps service and domain errors onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found"
	case errors.Is(err, domain.ErrCartLineNotFound):
		return http.StatusNotFound, "product is not in the cart"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrProductUnavailable):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repository.ErrCartConflict):
		return http.StatusConflict, "cart was modified concurrently, retry the request"
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "cart is empty"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondWithServiceError writes err as a JSON error. Field errors become a 400
// listing each field; unexpected errors are logged and hidden behind a 500.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	if fieldErrs := middleware.FormatValidationErrors(err); len(fieldErrs) > 0 {
		logger.Debug(msg, zap.Error(err))
		middleware.RespondWithValidationErrors(w, fieldErrs)
		return
	}

	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Debug(msg, zap.Error(err), zap.Int("status", status))
	}
	middleware.RespondWithError(w, status, message)
}

// respondWithDecodeError handles DecodeAndValidate failures
func respondWithDecodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
