package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alphios72/NewsinsightUI/internal/dashboard"
	"github.com/jmoiron/sqlx"
)

type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

// CountRows counts one table. The service validates the table name against
// the live schema before it gets here.
func (r *DashboardRepository) CountRows(ctx context.Context, tableName string) (int64, error) {
	quoted := `"` + strings.ReplaceAll(tableName, `"`, `""`) + `"`
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoted)

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

// RelevantDescriptions feeds the word cloud: descriptions of items marked
// relevant by the classifier.
func (r *DashboardRepository) RelevantDescriptions(ctx context.Context) ([]string, error) {
	const query = `SELECT description FROM relevant_or_not WHERE relevant = 1`

	var raw []sql.NullString
	if err := r.db.SelectContext(ctx, &raw, query); err != nil {
		return nil, err
	}

	descriptions := make([]string, 0, len(raw))
	for _, d := range raw {
		if d.Valid {
			descriptions = append(descriptions, d.String)
		}
	}
	return descriptions, nil
}
