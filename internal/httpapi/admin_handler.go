package httpapi

import (
	"net/http"

	"github.com/Joao-ahah/centro-artesanato-api/internal/admin"
)

type AdminHandler struct {
	dashboard *admin.Dashboard
}

func NewAdminHandler(dashboard *admin.Dashboard) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to gather dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
