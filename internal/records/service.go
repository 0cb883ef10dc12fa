package records

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/schema"
)

// Service executes list/create/update/delete against arbitrary introspected
// tables. Every operation re-validates the table name against the live
// schema and re-checks the caller's access before touching the database.
type Service struct {
	introspector Introspector
	resolver     AccessResolver
	repo         RepositoryAPI
	logger       *slog.Logger
}

func NewService(introspector Introspector, resolver AccessResolver, repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		introspector: introspector,
		resolver:     resolver,
		repo:         repo,
		logger:       logger,
	}
}

// guard validates the table against the live schema and checks the required
// access flag. It runs before any data SQL; a failure means no database work.
func (s *Service) guard(ctx context.Context, role internal.Role, tableName string, needEdit bool) ([]schema.Column, error) {
	ok, err := s.introspector.HasTable(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, internal.ErrUnknownTable
	}

	access, err := s.resolver.ResolveAccess(ctx, role, tableName)
	if err != nil {
		return nil, err
	}
	if needEdit && !access.CanEdit {
		return nil, internal.ErrPermissionDenied
	}
	if !needEdit && !access.CanView {
		return nil, internal.ErrPermissionDenied
	}

	return s.introspector.ListColumns(ctx, tableName)
}

// List returns up to limit rows shaped by the introspected column order.
func (s *Service) List(ctx context.Context, role internal.Role, tableName string, limit int) ([]Row, []schema.Column, error) {
	columns, err := s.guard(ctx, role, tableName, false)
	if err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	rows, err := s.repo.SelectRows(ctx, tableName, limit, hasIDColumn(columns))
	if err != nil {
		return nil, nil, err
	}

	return rows, columns, nil
}

// Create inserts one record. Values are always bound parameters; only the
// pre-validated identifiers reach the SQL text.
func (s *Service) Create(ctx context.Context, role internal.Role, tableName string, fieldValues map[string]interface{}) (Result, error) {
	columns, err := s.guard(ctx, role, tableName, true)
	if err != nil {
		return Result{}, err
	}

	if len(fieldValues) == 0 {
		return Result{}, internal.ErrEmptyPayload
	}

	fields, err := orderedFields(fieldValues, columns)
	if err != nil {
		return Result{}, err
	}

	affected, err := s.repo.InsertRow(ctx, tableName, fields)
	if err != nil {
		s.logger.Error("create record failed", "table", tableName, "error", err)
		return Result{}, err
	}

	return Result{Success: true, RowsAffected: affected}, nil
}

// Update modifies one record by id. An empty payload is a successful no-op
// and issues no SQL; an id field in the payload is stripped so the primary
// key cannot be rewritten.
func (s *Service) Update(ctx context.Context, role internal.Role, tableName string, id int64, fieldValues map[string]interface{}) (Result, error) {
	columns, err := s.guard(ctx, role, tableName, true)
	if err != nil {
		return Result{}, err
	}

	delete(fieldValues, "id")
	if len(fieldValues) == 0 {
		return Result{Success: true}, nil
	}

	fields, err := orderedFields(fieldValues, columns)
	if err != nil {
		return Result{}, err
	}

	affected, err := s.repo.UpdateRowByID(ctx, tableName, id, fields)
	if err != nil {
		s.logger.Error("update record failed", "table", tableName, "id", id, "error", err)
		return Result{}, err
	}

	return Result{Success: true, RowsAffected: affected}, nil
}

// Delete removes one record by id. It does not verify the row existed;
// RowsAffected carries that information to the caller.
func (s *Service) Delete(ctx context.Context, role internal.Role, tableName string, id int64) (Result, error) {
	if _, err := s.guard(ctx, role, tableName, true); err != nil {
		return Result{}, err
	}

	affected, err := s.repo.DeleteRowByID(ctx, tableName, id)
	if err != nil {
		s.logger.Error("delete record failed", "table", tableName, "id", id, "error", err)
		return Result{}, err
	}

	return Result{Success: true, RowsAffected: affected}, nil
}

// orderedFields validates every payload key against the introspected column
// set and returns the fields in a deterministic order.
func orderedFields(fieldValues map[string]interface{}, columns []schema.Column) ([]Field, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Name] = true
	}

	names := make([]string, 0, len(fieldValues))
	for name := range fieldValues {
		if !known[name] {
			return nil, internal.NewValidationError(
				fmt.Sprintf("unknown column %q", name), internal.ErrCodeValidationFailed)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Column: name, Value: fieldValues[name]})
	}
	return fields, nil
}

func hasIDColumn(columns []schema.Column) bool {
	for _, c := range columns {
		if c.Name == "id" {
			return true
		}
	}
	return false
}
