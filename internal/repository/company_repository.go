package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/facility-booking/internal/model"
)

// ErrCompanyNotFound is returned when a company cannot be found in the DB.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepo encapsulates all read queries related to companies.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo constructs a CompanyRepo with the provided DB handle.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = "company_id, name, address, contact_email, created_at, updated_at"

func scanCompany(s interface{ Scan(...any) error }) (model.Company, error) {
	var c model.Company
	var address, email sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &address, &email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Company{}, err
	}
	c.Address = nullString(address)
	c.ContactEmail = nullString(email)
	return c, nil
}

// ListAll returns every company ordered by name.  An empty table yields an
// empty, non-nil slice.
func (r *CompanyRepo) ListAll(ctx context.Context) ([]model.Company, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+companyColumns+" FROM companies ORDER BY name, company_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a company by its ID.  It returns ErrCompanyNotFound if no
// row is found.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+companyColumns+" FROM companies WHERE company_id = ?", id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
