package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/facility-booking/internal/model"
)

// ErrUserNotFound is returned when no user has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// UserRepo mirrors the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	var company sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,name,email,company_id,created_at FROM users WHERE user_id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &company, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.CompanyID = nullString(company)
	return &u, nil
}
