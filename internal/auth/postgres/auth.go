package auth

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/shivam99392677/anwesha26-sub000/internal/core/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserWithPassword(email string) (*user.User, string, error) {
	var u user.User
	var passwordHash string
	query := `SELECT id, anwesha_id, email, first_name, last_name, role, is_verified, password_hash
	          FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&u.ID, &u.AnweshaID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsVerified, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fmt.Errorf("user not found")
		}
		return nil, "", err
	}
	return &u, passwordHash, nil
}

func (r *Repository) GetUserByID(userID int64) (*user.User, error) {
	var u user.User
	query := `SELECT id, anwesha_id, email, first_name, last_name, role, is_verified
	          FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&u.ID, &u.AnweshaID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsVerified); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &u, nil
}
