package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

// SaleHandler handles the point-of-sale endpoints
type SaleHandler struct {
	service *service.SaleService
	logger  *slog.Logger
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service *service.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger,
	}
}

// SaleCreatedResponse is the body of a successful POST /sales.
type SaleCreatedResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Sale    *models.Sale `json:"sale"`
}

// ListSales handles GET /sales?page=N
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListSales(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, page, h.logger)
}

// CreateForm handles GET /sales/create
func (h *SaleHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SellableProducts(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"products": products}, h.logger)
}

// CreateSale handles POST /sales
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.SaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid sale request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	sale, err := h.service.RecordSale(r.Context(), req, actingUserID(r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/sales/%d", sale.ID))
	WriteJSON(w, http.StatusCreated, SaleCreatedResponse{
		Success: true,
		Message: "Sale completed successfully!",
		Sale:    sale,
	}, h.logger)
}

// GetSale handles GET /sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid sale ID", h.logger)
		return
	}

	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, sale, h.logger)
}

// ExportSales handles GET /sales/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *SaleHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	from, errFrom := models.ParseDate(r.URL.Query().Get("from"))
	to, errTo := models.ParseDate(r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		WriteError(w, http.StatusBadRequest, "from and to must be dates in YYYY-MM-DD format", h.logger)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportSales(r.Context(), from, to, &buf); err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", from, to)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write export", "error", err)
	}
}
