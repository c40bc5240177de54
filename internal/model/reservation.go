package model

import "time"

// Reservation is a committed booking of a facility by a company for the
// half-open window [StartTime, EndTime).  Reservations are created once by
// the booking service and never updated afterwards.  All times are naive
// wall-clock values in UTC.
type Reservation struct {
	ID         string    // reservations.reservation_id (UUID)
	FacilityID string    // reservations.facility_id
	CompanyID  string    // reservations.company_id
	StartTime  time.Time // reservations.start_time
	EndTime    time.Time // reservations.end_time
	Attendees  int       // reservations.attendees
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}
