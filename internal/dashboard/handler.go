package dashboard

import (
	"net/http"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Sidebar *SidebarBuilder
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, sidebar *SidebarBuilder) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Sidebar:     sidebar,
	}
}

// GetOverview serves the dashboard landing page numbers.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.Logger.Error("failed to compute dashboard stats", "error", err)
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load dashboard")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

type sidebarResponse struct {
	Role    string     `json:"role"`
	Entries []NavEntry `json:"entries"`
}

// GetSidebar serves the per-role navigation.
func (h *Handler) GetSidebar(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())

	entries, err := h.Sidebar.Build(r.Context(), role)
	if err != nil {
		h.Logger.Error("failed to build sidebar", "role", role, "error", err)
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load navigation")
		return
	}

	h.WriteJSON(w, http.StatusOK, sidebarResponse{
		Role:    string(role),
		Entries: entries,
	})
}
