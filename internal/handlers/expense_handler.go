package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

type ExpenseHandler struct {
	service *service.ExpenseService
	logger  *slog.Logger
}

func NewExpenseHandler(service *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, logger: logger}
}

// ListExpenses handles GET /expenses?page=N
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListExpenses(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, page, h.logger)
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.ExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	expense, err := h.service.RecordExpense(r.Context(), req, actingUserID(r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, expense, h.logger)
}
