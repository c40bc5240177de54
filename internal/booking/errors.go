package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/facility-booking/internal/model"
)

// Sentinel errors returned by the booking service.  Handlers translate them
// into HTTP status codes; see handler.ReservationHandler.
var (
	// ErrValidation marks a request whose shape is wrong (window ordering,
	// grid alignment, attendee count).  Storage is never touched.
	ErrValidation = errors.New("validation rejected")
	// ErrConflict marks a window that overlaps a persisted reservation.
	ErrConflict = errors.New("reservation conflict")
	// ErrNotFound marks a reference to a facility or company that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a failure of the datastore during a booking, including
	// lock timeouts and deadlocks.  The transaction has been rolled back.
	ErrStorage = errors.New("storage error")
	// ErrQuery marks a failure of the datastore on the read side.
	ErrQuery = errors.New("query error")

	ErrFacilityNotFound = fmt.Errorf("facility %w", ErrNotFound)
	ErrCompanyNotFound  = fmt.Errorf("company %w", ErrNotFound)
)

// Reason is the machine-readable cause of a rejected booking.
type Reason string

const (
	ReasonOrdering    Reason = "start not before end"
	ReasonGranularity Reason = "non-5-minute granularity"
	ReasonAttendees   Reason = "attendees must be positive"
	ReasonOverlap     Reason = "overlap"
)

// Rejection is returned when a booking is refused by a business rule.  It
// unwraps to ErrConflict for overlaps and to ErrValidation otherwise.
type Rejection struct {
	Reason    Reason
	Conflicts []model.Reservation // set only for ReasonOverlap
}

func (r *Rejection) Error() string {
	if len(r.Conflicts) == 0 {
		return "reservation rejected: " + string(r.Reason)
	}
	ids := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		ids = append(ids, c.ID)
	}
	return fmt.Sprintf("reservation rejected: %s with %s", r.Reason, strings.Join(ids, ","))
}

func (r *Rejection) Unwrap() error {
	if r.Reason == ReasonOverlap {
		return ErrConflict
	}
	return ErrValidation
}

func reject(reason Reason) error { return &Rejection{Reason: reason} }
