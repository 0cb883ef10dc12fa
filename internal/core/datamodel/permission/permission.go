package permission

import "time"

// TablePermission is one cell pair of the role x table access matrix.
// Absence of a row means no access of either kind for that role.
type TablePermission struct {
	ID        int64     `gorm:"primaryKey"`
	Role      string    `gorm:"column:role;not null;uniqueIndex:idx_role_table"`
	Table     string    `gorm:"column:table_name;not null;uniqueIndex:idx_role_table"`
	CanView   bool      `gorm:"column:can_view;default:false"`
	CanEdit   bool      `gorm:"column:can_edit;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TablePermission) TableName() string {
	return "table_permissions"
}
