package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

type PurchaseHandler struct {
	service *service.PurchaseService
	logger  *slog.Logger
}

func NewPurchaseHandler(service *service.PurchaseService, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{service: service, logger: logger}
}

// ListPurchases handles GET /purchases?page=N
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListPurchases(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, page, h.logger)
}

// ListSuppliers handles GET /suppliers
func (h *PurchaseHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.Suppliers(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, suppliers, h.logger)
}

// CreatePurchase handles POST /purchases
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	purchase, err := h.service.RecordPurchase(r.Context(), req, actingUserID(r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, purchase, h.logger)
}
