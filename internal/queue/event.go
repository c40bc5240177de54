// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/facility-booking/internal/model"
)

// ReservationCreatedQueue is the durable queue carrying ReservationCreatedEvent.
const ReservationCreatedQueue = "reservation.created"

// ReservationCreatedEvent is published after a reservation commits.  It
// carries the full record so consumers never need to query the database.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	FacilityID    string `json:"facility_id"`
	CompanyID     string `json:"company_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Attendees     int    `json:"attendees"`
	CreatedAt     string `json:"created_at"`
}

const eventTimeLayout = "2006-01-02T15:04:05"

// NewReservationCreatedEvent builds the event for a committed reservation.
func NewReservationCreatedEvent(r model.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID: r.ID,
		FacilityID:    r.FacilityID,
		CompanyID:     r.CompanyID,
		StartTime:     r.StartTime.UTC().Format(eventTimeLayout),
		EndTime:       r.EndTime.UTC().Format(eventTimeLayout),
		Attendees:     r.Attendees,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
