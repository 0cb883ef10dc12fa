package schema

import (
	"context"
	"database/sql"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/jmoiron/sqlx"
)

// Column describes one column of an introspected table, in physical order.
type Column struct {
	Name     string  `json:"name"`
	DataType string  `json:"data_type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// columnRow matches information_schema.columns.
type columnRow struct {
	ColumnName    string         `db:"column_name"`
	DataType      string         `db:"data_type"`
	IsNullable    string         `db:"is_nullable"`
	ColumnDefault sql.NullString `db:"column_default"`
}

// Introspector discovers tables and columns from the live database catalog.
// Results are never cached: the schema can change out of band, and the table
// list doubles as the identifier allowlist for all dynamic SQL.
type Introspector struct {
	db         *sqlx.DB
	schemaName string
}

func NewIntrospector(db *sqlx.DB) *Introspector {
	return &Introspector{db: db, schemaName: "public"}
}

// ListTables returns the base tables of the application schema, sorted
// ascending. The goose bookkeeping table is not a user table and is excluded.
func (i *Introspector) ListTables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		AND table_type = 'BASE TABLE'
		AND table_name <> 'schema_migrations'
		ORDER BY table_name ASC`

	var tables []string
	if err := i.db.SelectContext(ctx, &tables, query, i.schemaName); err != nil {
		return nil, internal.ErrStorageUnavailable.WithCause(err)
	}
	return tables, nil
}

// HasTable reports whether tableName is in the live table list.
func (i *Introspector) HasTable(ctx context.Context, tableName string) (bool, error) {
	tables, err := i.ListTables(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t == tableName {
			return true, nil
		}
	}
	return false, nil
}

// ListColumns returns the column definitions of tableName ordered by their
// physical position. Unknown tables fail before any catalog query for columns
// runs, which is the injection defense for the identifier.
func (i *Introspector) ListColumns(ctx context.Context, tableName string) ([]Column, error) {
	ok, err := i.HasTable(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, internal.ErrUnknownTable
	}

	const query = `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1
		AND table_name = $2
		ORDER BY ordinal_position ASC`

	var rows []columnRow
	if err := i.db.SelectContext(ctx, &rows, query, i.schemaName, tableName); err != nil {
		return nil, internal.ErrStorageUnavailable.WithCause(err)
	}

	columns := make([]Column, 0, len(rows))
	for _, r := range rows {
		col := Column{
			Name:     r.ColumnName,
			DataType: r.DataType,
			Nullable: r.IsNullable == "YES",
		}
		if r.ColumnDefault.Valid {
			def := r.ColumnDefault.String
			col.Default = &def
		}
		columns = append(columns, col)
	}
	return columns, nil
}
