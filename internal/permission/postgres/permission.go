package postgres

import (
	"context"
	"errors"

	"github.com/alphios72/NewsinsightUI/internal"
	permissionDatamodel "github.com/alphios72/NewsinsightUI/internal/core/datamodel/permission"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Get(ctx context.Context, role internal.Role, tableName string) (*permission.Permission, error) {
	var row permissionDatamodel.TablePermission
	err := r.db.WithContext(ctx).
		Where("role = ? AND table_name = ?", string(role), tableName).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *PermissionRepository) List(ctx context.Context, role internal.Role) ([]*permission.Permission, error) {
	var rows []*permissionDatamodel.TablePermission
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("table_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]*permission.Permission, 0, len(rows))
	for _, row := range rows {
		perms = append(perms, fromDataModel(row))
	}
	return perms, nil
}

// Upsert is keyed on (role, table_name) and assigns only the named flag, so
// concurrent updates to different tables never clobber each other's rows.
func (r *PermissionRepository) Upsert(ctx context.Context, role internal.Role, tableName string, kind permission.Kind, value bool) error {
	row := permissionDatamodel.TablePermission{
		Role:  string(role),
		Table: tableName,
	}

	column := "can_view"
	if kind == permission.KindEdit {
		column = "can_edit"
		row.CanEdit = value
	} else {
		row.CanView = value
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "table_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: value}),
	}).Create(&row).Error
}

func fromDataModel(row *permissionDatamodel.TablePermission) *permission.Permission {
	return &permission.Permission{
		ID:        row.ID,
		Role:      internal.Role(row.Role),
		TableName: row.Table,
		CanView:   row.CanView,
		CanEdit:   row.CanEdit,
	}
}
