package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/facility-booking/internal/model"
)

// ErrFacilityNotFound is returned when a facility cannot be found in the DB.
var ErrFacilityNotFound = errors.New("facility not found")

// FacilityRepo provides read access to the facilities catalogue.  Writes to
// facilities are managed outside this service.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo returns a FacilityRepo bound to the given database.
func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{db: db} }

const facilityColumns = "facility_id, name, type, capacity, location, management_policy, created_at, updated_at"

func scanFacility(s interface{ Scan(...any) error }) (model.Facility, error) {
	var f model.Facility
	var location, policy sql.NullString
	if err := s.Scan(&f.ID, &f.Name, &f.Type, &f.Capacity, &location, &policy, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return model.Facility{}, err
	}
	f.Location = nullString(location)
	f.ManagementPolicy = nullString(policy)
	return f, nil
}

// ListAll returns every facility ordered by name.
func (r *FacilityRepo) ListAll(ctx context.Context) ([]model.Facility, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+facilityColumns+" FROM facilities ORDER BY name, facility_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID fetches one facility.  It returns ErrFacilityNotFound when absent.
func (r *FacilityRepo) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+facilityColumns+" FROM facilities WHERE facility_id = ?", id)
	f, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &f, nil
}
