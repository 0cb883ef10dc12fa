package permission

import (
	"context"

	"github.com/alphios72/NewsinsightUI/internal"
)

// Access is the resolved view/edit pair for one role on one table.
type Access struct {
	CanView bool `json:"can_view"`
	CanEdit bool `json:"can_edit"`
}

// Kind names which flag of a permission row an update touches.
type Kind string

const (
	KindView Kind = "view"
	KindEdit Kind = "edit"
)

func (k Kind) Valid() bool {
	return k == KindView || k == KindEdit
}

// Permission is the domain view of one (role, table) row of the matrix.
type Permission struct {
	ID        int64         `json:"id"`
	Role      internal.Role `json:"role"`
	TableName string        `json:"table_name"`
	CanView   bool          `json:"can_view"`
	CanEdit   bool          `json:"can_edit"`
}

type RepositoryAPI interface {
	// Get returns nil without error when no row exists for (role, table).
	Get(ctx context.Context, role internal.Role, tableName string) (*Permission, error)
	List(ctx context.Context, role internal.Role) ([]*Permission, error)
	// Upsert touches only the named kind's flag, keyed on (role, table);
	// the other flag defaults to false on first creation.
	Upsert(ctx context.Context, role internal.Role, tableName string, kind Kind, value bool) error
}
