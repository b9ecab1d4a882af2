package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// ValidationResponse is the 422 body: one message per offending field.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// WriteServiceError maps a service error onto an HTTP status. Unexpected
// errors are logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
			Message: "The given data was invalid.",
			Errors:  verr.Fields,
		}, logger)
	case errors.Is(err, service.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", logger)
	case errors.Is(err, service.ErrSaleNotFound):
		WriteError(w, http.StatusNotFound, "Sale not found", logger)
	case errors.Is(err, service.ErrSupplierNotFound):
		WriteError(w, http.StatusNotFound, "Supplier not found", logger)
	case errors.Is(err, service.ErrInsufficientStock):
		WriteError(w, http.StatusConflict, "Insufficient stock", logger)
	case errors.Is(err, service.ErrProductInUse):
		WriteError(w, http.StatusConflict, "Product has recorded sales; deactivate it instead", logger)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "Invalid email or password", logger)
	case errors.Is(err, service.ErrInvalidDateRange):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), logger)
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
