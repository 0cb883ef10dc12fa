package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/alphios72/NewsinsightUI/internal/records"
	"github.com/jmoiron/sqlx"
)

// RecordRepository runs parameterized dynamic SQL. Table and column names
// reaching this layer have already been validated against the live schema by
// the record service; values are always bound, never interpolated.
type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) records.RepositoryAPI {
	return &RecordRepository{db: db}
}

// quoteIdent double-quotes an identifier, escaping embedded quotes. The
// service's schema validation is the real defense; this keeps odd-but-legal
// identifiers (mixed case, spaces) working.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (r *RecordRepository) SelectRows(ctx context.Context, tableName string, limit int, orderByID bool) ([]records.Row, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(tableName))
	if orderByID {
		query += ` ORDER BY "id" DESC`
	}
	query += ` LIMIT $1`

	sqlRows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer sqlRows.Close()

	var rows []records.Row
	for sqlRows.Next() {
		row := map[string]interface{}{}
		if err := sqlRows.MapScan(row); err != nil {
			return nil, mapDBError(err)
		}
		normalizeRow(row)
		rows = append(rows, records.Row(row))
	}
	if err := sqlRows.Err(); err != nil {
		return nil, mapDBError(err)
	}

	return rows, nil
}

func (r *RecordRepository) InsertRow(ctx context.Context, tableName string, fields []records.Field) (int64, error) {
	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))

	for i, f := range fields {
		columns = append(columns, quoteIdent(f.Column))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, f.Value)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(tableName),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapDBError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapDBError(err)
	}
	return affected, nil
}

func (r *RecordRepository) UpdateRowByID(ctx context.Context, tableName string, id int64, fields []records.Field) (int64, error) {
	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)

	for i, f := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", quoteIdent(f.Column), i+1))
		args = append(args, f.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = $%d`,
		quoteIdent(tableName),
		strings.Join(assignments, ", "),
		len(fields)+1)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapDBError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapDBError(err)
	}
	return affected, nil
}

func (r *RecordRepository) DeleteRowByID(ctx context.Context, tableName string, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE "id" = $1`, quoteIdent(tableName))

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, mapDBError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapDBError(err)
	}
	return affected, nil
}

// normalizeRow converts driver byte slices to strings so rows marshal as
// readable JSON instead of base64.
func normalizeRow(row map[string]interface{}) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
