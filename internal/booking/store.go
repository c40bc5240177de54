package booking

import (
	"context"
	"time"

	"github.com/iliyamo/facility-booking/internal/model"
)

// Store is the transactional datastore the booking service runs against.
//
// WithFacilityLock is the per-facility serialization point.  It must open a
// transaction, take an exclusive lock scoped to facilityID that is held until
// the transaction ends, run fn, and commit only if fn returns nil.  Any
// error from fn or from the store rolls the transaction back and is returned
// unchanged.  It returns ErrFacilityNotFound when the facility does not exist.
// Locks for different facilities must be independent.
type Store interface {
	WithFacilityLock(ctx context.Context, facilityID string, fn func(ctx context.Context, tx Tx) error) error
	// ListReservations returns the facility's reservations ordered by start
	// time.  When from and to are set, only reservations whose start time
	// lies in [from, to] are returned.
	ListReservations(ctx context.Context, facilityID string, from, to *time.Time) ([]model.Reservation, error)
}

// Tx is the view of the datastore available inside WithFacilityLock.
type Tx interface {
	CompanyExists(ctx context.Context, companyID string) (bool, error)
	// ReservationsInWindow returns at least every reservation on facilityID
	// that overlaps w.
	ReservationsInWindow(ctx context.Context, facilityID string, w Window) ([]model.Reservation, error)
	InsertReservation(ctx context.Context, r *model.Reservation) error
}

// Publisher receives committed reservations.  Publishing is best effort.
type Publisher interface {
	PublishReservationCreated(ctx context.Context, r model.Reservation) error
}
