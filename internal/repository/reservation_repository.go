package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/facility-booking/internal/booking"
	"github.com/iliyamo/facility-booking/internal/model"
)

// ReservationRepo is the MySQL implementation of booking.Store.
//
// Bookings on one facility are serialized by an exclusive InnoDB row lock
// on that facility's row in the facilities table, taken with SELECT ... FOR
// UPDATE as the first statement of the transaction and held until commit or
// rollback.  Bookings on other facilities lock other rows and are not
// blocked.  Lock waits end either at the context deadline or at the
// session's innodb_lock_wait_timeout, whichever comes first.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the pool for health checks.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = "reservation_id, facility_id, company_id, start_time, end_time, attendees, created_at, updated_at"

func scanReservation(s interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	err := s.Scan(&res.ID, &res.FacilityID, &res.CompanyID, &res.StartTime, &res.EndTime,
		&res.Attendees, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WithFacilityLock runs fn inside a READ COMMITTED transaction holding the
// facility's row lock.  The transaction is committed only when fn returns
// nil and is rolled back on every other exit path.
func (r *ReservationRepo) WithFacilityLock(ctx context.Context, facilityID string, fn func(ctx context.Context, tx booking.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin: %w", classify(err))
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked string
	err = tx.QueryRowContext(ctx,
		"SELECT facility_id FROM facilities WHERE facility_id = ? FOR UPDATE", facilityID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrFacilityNotFound
		}
		return fmt.Errorf("lock facility %s: %w", facilityID, classify(err))
	}

	if err := fn(ctx, &reservationTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", classify(err))
	}
	committed = true
	return nil
}

// ListReservations returns the facility's reservations ordered by start
// time, optionally limited to start times within [from, to].
func (r *ReservationRepo) ListReservations(ctx context.Context, facilityID string, from, to *time.Time) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservations WHERE facility_id = ?"
	args := []any{facilityID}
	if from != nil && to != nil {
		q += " AND start_time BETWEEN ? AND ?"
		args = append(args, from.UTC(), to.UTC())
	}
	q += " ORDER BY start_time, reservation_id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// reservationTx implements booking.Tx on top of an open transaction.
type reservationTx struct {
	tx *sql.Tx
}

func (t *reservationTx) CompanyExists(ctx context.Context, companyID string) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, "SELECT 1 FROM companies WHERE company_id = ? LIMIT 1", companyID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("company lookup: %w", classify(err))
	}
	return true, nil
}

// ReservationsInWindow selects the facility's reservations that overlap w
// under half-open semantics; the (facility_id, start_time) index serves it.
func (t *reservationTx) ReservationsInWindow(ctx context.Context, facilityID string, w booking.Window) ([]model.Reservation, error) {
	rows, err := t.tx.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE facility_id = ? AND start_time < ? AND end_time > ? ORDER BY start_time",
		facilityID, w.End.UTC(), w.Start.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("overlap query: %w", classify(err))
	}
	return collectReservations(rows)
}

func (t *reservationTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (reservation_id, facility_id, company_id, start_time, end_time, attendees, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q,
		res.ID, res.FacilityID, res.CompanyID,
		res.StartTime.UTC(), res.EndTime.UTC(), res.Attendees,
		res.CreatedAt.UTC(), res.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", classify(err))
	}
	return nil
}
