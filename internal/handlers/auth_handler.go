package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, result, h.logger)
}
