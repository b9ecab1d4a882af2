package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/service"
)

// DashboardHandler serves the landing page statistics
type DashboardHandler struct {
	service *service.ReportService
	logger  *slog.Logger
}

func NewDashboardHandler(service *service.ReportService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// ServeHTTP handles GET /
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard, h.logger)
}
