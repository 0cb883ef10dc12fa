package permission

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/transport"
	"github.com/alphios72/NewsinsightUI/internal/uiconfig"
)

// TableLister is the slice of the schema introspector the permissions page
// needs: the matrix is rendered against the live table list.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}

// LabelStore is the label half of the admin configuration surface.
type LabelStore interface {
	Labels() map[string]string
	SaveLabel(tableName, label string) error
}

// Handler is the admin-only configuration surface: the request gate has
// already restricted this path prefix to the ADMIN role.
type Handler struct {
	*transport.BaseHandler
	Service *Service
	Tables  TableLister
	Labels  LabelStore
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, tables TableLister, labels LabelStore) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Tables:      tables,
		Labels:      labels,
	}
}

type permissionEntry struct {
	TableName string `json:"table_name"`
	Label     string `json:"label"`
	CanView   bool   `json:"can_view"`
	CanEdit   bool   `json:"can_edit"`
}

type permissionsResponse struct {
	Role        string            `json:"role"`
	Permissions []permissionEntry `json:"permissions"`
}

// GetPermissions renders the CONFIGURATOR matrix over every live table;
// tables without a stored row show as no-access.
func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.ListTables(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to list tables")
		return
	}

	stored, err := h.Service.ListPermissions(r.Context(), internal.RoleConfigurator)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}

	byTable := make(map[string]*Permission, len(stored))
	for _, p := range stored {
		byTable[p.TableName] = p
	}

	labels := h.Labels.Labels()

	entries := make([]permissionEntry, 0, len(tables))
	for _, name := range tables {
		entry := permissionEntry{
			TableName: name,
			Label:     uiconfig.LabelFor(labels, name),
		}
		if p, ok := byTable[name]; ok {
			entry.CanView = p.CanView
			entry.CanEdit = p.CanEdit
		}
		entries = append(entries, entry)
	}

	h.WriteJSON(w, http.StatusOK, permissionsResponse{
		Role:        string(internal.RoleConfigurator),
		Permissions: entries,
	})
}

type updatePermissionDTO struct {
	TableName string `json:"table_name"`
	Kind      string `json:"kind"`
	Value     bool   `json:"value"`
}

// UpdatePermission toggles a single view/edit flag for the CONFIGURATOR role.
func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	var dto updatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.TableName == "" {
		h.WriteError(w, http.StatusBadRequest, "table_name is required")
		return
	}

	kind := Kind(dto.Kind)
	if !kind.Valid() {
		h.WriteError(w, http.StatusBadRequest, "kind must be view or edit")
		return
	}

	if err := h.Service.SetPermission(r.Context(), internal.RoleConfigurator, dto.TableName, kind, dto.Value); err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to update permission")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateLabelDTO struct {
	TableName string `json:"table_name"`
	Label     string `json:"label"`
}

// UpdateLabel rewrites one table's display label. Last write wins.
func (h *Handler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	var dto updateLabelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.TableName == "" {
		h.WriteError(w, http.StatusBadRequest, "table_name is required")
		return
	}

	if err := h.Labels.SaveLabel(dto.TableName, dto.Label); err != nil {
		h.Logger.Error("failed to save table label", "table", dto.TableName, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update label")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
