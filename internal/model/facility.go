package model

import "time"

// Facility is a bookable physical resource such as a meeting room or desk.
// The booking engine never modifies facilities; it only locks the row to
// serialise bookings on it.
//
// Fields:
//
//	ID               – facilities.facility_id
//	Name             – display name
//	Type             – free-form kind, e.g. "meeting_room"
//	Capacity         – nominal number of seats
//	Location         – building/floor description
//	ManagementPolicy – operator notes on how the facility is managed
type Facility struct {
	ID               string    `json:"facility_id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Capacity         int       `json:"capacity"`
	Location         *string   `json:"location"`
	ManagementPolicy *string   `json:"management_policy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
