// Package booking decides whether a reservation request may be accepted and
// persists accepted ones.  The no-overlap invariant is enforced by running
// the overlap check and the insert inside Store.WithFacilityLock, so two
// requests for the same facility are serialized while requests for
// different facilities proceed in parallel.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/facility-booking/internal/model"
)

// State is the position of a booking attempt in its lifecycle.
type State string

const (
	StateReceived  State = "received"
	StateValidated State = "validated"
	StateChecked   State = "checked"
	StateCommitted State = "committed"
	StateRejected  State = "rejected"
	StateErrored   State = "errored"
)

const publishTimeout = 3 * time.Second

// Request is an inbound booking.
type Request struct {
	CompanyID  string
	FacilityID string
	StartTime  time.Time
	EndTime    time.Time
	Attendees  int
}

// Service runs booking transactions and reservation queries.
type Service struct {
	store   Store
	pub     Publisher
	logger  *log.Logger
	timeout time.Duration

	now   func() time.Time
	newID func() string
}

// NewService wires a Service.  pub may be nil when events are disabled.
// timeout bounds the whole transaction including the wait for the facility
// lock; a non-positive value disables the bound.
func NewService(store Store, pub Publisher, logger *log.Logger, timeout time.Duration) *Service {
	if store == nil || logger == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{
		store:   store,
		pub:     pub,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// attempt tracks one request through the state machine for logging.
type attempt struct {
	req   Request
	state State
}

func (a *attempt) fields() log.JSON {
	return log.JSON{
		"facility_id": a.req.FacilityID,
		"company_id":  a.req.CompanyID,
		"start_time":  a.req.StartTime.Format(time.DateTime),
		"end_time":    a.req.EndTime.Format(time.DateTime),
		"state":       string(a.state),
	}
}

// Book validates req, checks it against the facility's reservations and
// inserts it, all under the facility's lock.  On success the committed
// reservation is returned.  Otherwise the error is a *Rejection (validation
// or overlap), wraps ErrNotFound for unknown facility/company, or wraps
// ErrStorage; in every case nothing was written.
func (s *Service) Book(ctx context.Context, req Request) (*model.Reservation, error) {
	req.StartTime = normalize(req.StartTime)
	req.EndTime = normalize(req.EndTime)
	a := &attempt{req: req, state: StateReceived}

	w := Window{Start: req.StartTime, End: req.EndTime}
	if err := ValidateWindow(w); err != nil {
		return nil, s.rejected(a, err)
	}
	if req.Attendees <= 0 {
		return nil, s.rejected(a, reject(ReasonAttendees))
	}
	a.state = StateValidated

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var created model.Reservation
	err := s.store.WithFacilityLock(ctx, req.FacilityID, func(ctx context.Context, tx Tx) error {
		ok, err := tx.CompanyExists(ctx, req.CompanyID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCompanyNotFound
		}
		conflicts, err := CheckOverlap(ctx, tx, req.FacilityID, w)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &Rejection{Reason: ReasonOverlap, Conflicts: conflicts}
		}
		a.state = StateChecked

		now := s.now().UTC().Truncate(time.Second)
		created = model.Reservation{
			ID:         s.newID(),
			FacilityID: req.FacilityID,
			CompanyID:  req.CompanyID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Attendees:  req.Attendees,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.InsertReservation(ctx, &created)
	})

	var rej *Rejection
	switch {
	case err == nil:
	case errors.As(err, &rej):
		return nil, s.rejected(a, err)
	case errors.Is(err, ErrNotFound):
		a.state = StateRejected
		f := a.fields()
		f["message"] = "reservation rejected"
		f["reason"] = err.Error()
		s.logger.Infoj(f)
		return nil, err
	default:
		a.state = StateErrored
		f := a.fields()
		f["message"] = "reservation failed"
		f["error"] = err.Error()
		s.logger.Errorj(f)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	a.state = StateCommitted
	f := a.fields()
	f["message"] = "reservation committed"
	f["reservation_id"] = created.ID
	s.logger.Infoj(f)

	s.publish(ctx, created)
	return &created, nil
}

func (s *Service) rejected(a *attempt, err error) error {
	a.state = StateRejected
	f := a.fields()
	f["message"] = "reservation rejected"
	var rej *Rejection
	if errors.As(err, &rej) {
		f["reason"] = string(rej.Reason)
		if len(rej.Conflicts) > 0 {
			ids := make([]string, 0, len(rej.Conflicts))
			for _, c := range rej.Conflicts {
				ids = append(ids, c.ID)
			}
			f["conflicts"] = ids
		}
	}
	s.logger.Infoj(f)
	return err
}

// publish hands the committed reservation to the event publisher.  The
// booking is already durable, so failures are only logged.
func (s *Service) publish(ctx context.Context, r model.Reservation) {
	if s.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.pub.PublishReservationCreated(ctx, r); err != nil {
		s.logger.Warnj(log.JSON{
			"message":        "reservation event not published",
			"reservation_id": r.ID,
			"error":          err.Error(),
		})
	}
}

// List returns the facility's reservations.  When day is set, only
// reservations starting within that calendar day (00:00:00 to 23:59:59, no
// timezone conversion) are returned.
func (s *Service) List(ctx context.Context, facilityID string, day *time.Time) ([]model.Reservation, error) {
	if facilityID == "" {
		return nil, fmt.Errorf("%w: facility_id is required", ErrValidation)
	}
	var from, to *time.Time
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.Add(24*time.Hour - time.Second)
		from, to = &start, &end
	}
	out, err := s.store.ListReservations(ctx, facilityID, from, to)
	if err != nil {
		s.logger.Errorj(log.JSON{
			"message":     "reservation query failed",
			"facility_id": facilityID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return out, nil
}
