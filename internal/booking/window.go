package booking

import "time"

// GridMinutes is the scheduling grid.  Every window boundary must fall on a
// minute that is a multiple of it.
const GridMinutes = 5

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two windows share any instant.  Windows that
// only touch (one ends exactly when the other starts) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// ValidateWindow checks the shape of a candidate window.  Ordering is
// checked before grid alignment.  It returns nil or a *Rejection.
func ValidateWindow(w Window) error {
	if !w.Start.Before(w.End) {
		return reject(ReasonOrdering)
	}
	if w.Start.Minute()%GridMinutes != 0 || w.End.Minute()%GridMinutes != 0 {
		return reject(ReasonGranularity)
	}
	return nil
}

// normalize maps t onto the naive UTC wall clock at second precision, which
// is what a DATETIME column stores.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
