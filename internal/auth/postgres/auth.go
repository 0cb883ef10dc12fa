package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserByUsername(username string) (*auth.User, error) {
	var (
		user auth.User
		role string
	)

	query := `SELECT id, username, password, role FROM users WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	user.Role = internal.Role(role)
	return &user, nil
}
