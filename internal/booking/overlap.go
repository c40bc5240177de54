package booking

import (
	"context"

	"github.com/iliyamo/facility-booking/internal/model"
)

// CheckOverlap returns the reservations on facilityID that conflict with w.
// The store narrows the candidates with a range predicate; every candidate is
// re-checked here so a broader store result can never produce a false
// positive, and rows for other facilities never participate.
func CheckOverlap(ctx context.Context, tx Tx, facilityID string, w Window) ([]model.Reservation, error) {
	candidates, err := tx.ReservationsInWindow(ctx, facilityID, w)
	if err != nil {
		return nil, err
	}
	var conflicts []model.Reservation
	for _, r := range candidates {
		if r.FacilityID != facilityID {
			continue
		}
		if w.Overlaps(Window{Start: r.StartTime, End: r.EndTime}) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}
