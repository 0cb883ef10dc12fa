package records

import (
	"context"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	"github.com/alphios72/NewsinsightUI/internal/schema"
)

// DefaultListLimit bounds list results when the caller does not ask for a
// specific limit. The grid operates on this snapshot client-style, so the
// bound keeps a single request from dragging a whole table into memory.
const DefaultListLimit = 5000

// Row is an untyped record: column name to value, shaped by the introspected
// column list of its table, never inferred from sampled data.
type Row map[string]interface{}

// Field is one validated column/value pair bound into dynamic SQL.
type Field struct {
	Column string
	Value  interface{}
}

// Result reports the outcome of a mutation. RowsAffected lets callers detect
// an update or delete that matched nothing; the operation itself still
// reports success in that case.
type Result struct {
	Success      bool  `json:"success"`
	RowsAffected int64 `json:"rows_affected"`
}

// Introspector is the slice of the schema introspector the service needs.
type Introspector interface {
	ListTables(ctx context.Context) ([]string, error)
	HasTable(ctx context.Context, tableName string) (bool, error)
	ListColumns(ctx context.Context, tableName string) ([]schema.Column, error)
}

// AccessResolver gates every operation on the caller's role.
type AccessResolver interface {
	ResolveAccess(ctx context.Context, role internal.Role, tableName string) (permission.Access, error)
}

// RepositoryAPI executes parameterized dynamic SQL against identifiers the
// service has already validated against the live schema.
type RepositoryAPI interface {
	SelectRows(ctx context.Context, tableName string, limit int, orderByID bool) ([]Row, error)
	InsertRow(ctx context.Context, tableName string, fields []Field) (int64, error)
	UpdateRowByID(ctx context.Context, tableName string, id int64, fields []Field) (int64, error)
	DeleteRowByID(ctx context.Context, tableName string, id int64) (int64, error)
}
