package records

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/schema"
	"github.com/alphios72/NewsinsightUI/internal/transport"
	"github.com/alphios72/NewsinsightUI/internal/uiconfig"
	"github.com/go-chi/chi"
)

// LabelSource is the read side of the label store.
type LabelSource interface {
	Labels() map[string]string
}

type Handler struct {
	*transport.BaseHandler
	Service      *Service
	Introspector Introspector
	Resolver     AccessResolver
	Labels       LabelSource
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, introspector Introspector, resolver AccessResolver, labels LabelSource) *Handler {
	return &Handler{
		BaseHandler:  baseHandler,
		Service:      service,
		Introspector: introspector,
		Resolver:     resolver,
		Labels:       labels,
	}
}

type tableEntry struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	CanView bool   `json:"can_view"`
	CanEdit bool   `json:"can_edit"`
}

type tablesResponse struct {
	Tables []tableEntry `json:"tables"`
}

// GetTables lists every introspected table with its display label and the
// caller's resolved access flags.
func (h *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())

	tables, err := h.Introspector.ListTables(r.Context())
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	labels := h.Labels.Labels()

	entries := make([]tableEntry, 0, len(tables))
	for _, name := range tables {
		access, err := h.Resolver.ResolveAccess(r.Context(), role, name)
		if err != nil {
			h.writeAppError(w, err)
			return
		}
		entries = append(entries, tableEntry{
			Name:    name,
			Label:   uiconfig.LabelFor(labels, name),
			CanView: access.CanView,
			CanEdit: access.CanEdit,
		})
	}

	h.WriteJSON(w, http.StatusOK, tablesResponse{Tables: entries})
}

type tablePageResponse struct {
	Table   string          `json:"table"`
	Label   string          `json:"label"`
	Columns []schema.Column `json:"columns"`
	CanEdit bool            `json:"can_edit"`
	GridResult
}

// GetTable serves one table's page: introspected columns plus the filtered,
// sorted, paginated snapshot of its rows.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())
	tableName := chi.URLParam(r, "tableName")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, columns, err := h.Service.List(r.Context(), role, tableName, limit)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	access, err := h.Resolver.ResolveAccess(r.Context(), role, tableName)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	grid := ApplyGrid(rows, gridQueryFromRequest(r))
	labels := h.Labels.Labels()

	h.WriteJSON(w, http.StatusOK, tablePageResponse{
		Table:      tableName,
		Label:      uiconfig.LabelFor(labels, tableName),
		Columns:    columns,
		CanEdit:    access.CanEdit,
		GridResult: grid,
	})
}

// CreateRecord inserts a record from an untyped column/value payload.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())
	tableName := chi.URLParam(r, "tableName")

	var fieldValues map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fieldValues); err != nil {
		h.writeMutationError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Create(r.Context(), role, tableName, fieldValues)
	if err != nil {
		h.writeMutationFailure(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

// UpdateRecord applies a partial update to one record by id.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())
	tableName := chi.URLParam(r, "tableName")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeMutationError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var fieldValues map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fieldValues); err != nil {
		h.writeMutationError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Update(r.Context(), role, tableName, id, fieldValues)
	if err != nil {
		h.writeMutationFailure(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// DeleteRecord removes one record by id.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	role := internal.RoleFromContext(r.Context())
	tableName := chi.URLParam(r, "tableName")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeMutationError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	result, err := h.Service.Delete(r.Context(), role, tableName, id)
	if err != nil {
		h.writeMutationFailure(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// gridQueryFromRequest reads the grid state from query parameters:
// page, page_size, sort_by, sort_dir and filter.<column>=v1|v2.
func gridQueryFromRequest(r *http.Request) GridQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	filters := map[string][]string{}
	for key, values := range q {
		if !strings.HasPrefix(key, "filter.") || len(values) == 0 {
			continue
		}
		column := strings.TrimPrefix(key, "filter.")
		if column == "" {
			continue
		}
		filters[column] = strings.Split(values[0], "|")
	}

	return GridQuery{
		Filters:  filters,
		SortBy:   q.Get("sort_by"),
		SortDir:  SortDirection(q.Get("sort_dir")),
		Page:     page,
		PageSize: pageSize,
	}
}

// writeAppError maps application errors onto the response. Permission
// failures render the explicit access-denied view rather than data.
func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.Code == internal.ErrCodePermissionDenied {
			h.WriteError(w, http.StatusForbidden, "you do not have permission to view this table")
			return
		}
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

type mutationErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) writeMutationError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, mutationErrorResponse{Success: false, Error: message})
}

// writeMutationFailure returns the structured {success:false, error} result;
// the message reaches the operator verbatim, backend detail included.
func (h *Handler) writeMutationFailure(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.writeMutationError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.writeMutationError(w, http.StatusInternalServerError, err.Error())
}
