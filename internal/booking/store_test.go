package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/facility-booking/internal/model"
)

// memStore is an in-memory Store honouring the WithFacilityLock contract:
// one semaphore per facility, writes applied only when fn succeeds.
type memStore struct {
	mu         sync.Mutex
	locks      map[string]chan struct{}
	facilities map[string]bool
	companies  map[string]bool
	rows       []model.Reservation

	insertErr   error
	listErr     error
	insertDelay time.Duration
}

func newMemStore(facilities ...string) *memStore {
	m := &memStore{
		locks:      map[string]chan struct{}{},
		facilities: map[string]bool{},
		companies:  map[string]bool{"c-1": true, "c-2": true},
	}
	for _, f := range facilities {
		m.facilities[f] = true
	}
	return m
}

func (m *memStore) lockFor(facilityID string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[facilityID]
	if !ok {
		l = make(chan struct{}, 1)
		m.locks[facilityID] = l
	}
	return l
}

// hold takes the facility lock from outside a transaction and returns the
// release function.
func (m *memStore) hold(facilityID string) func() {
	l := m.lockFor(facilityID)
	l <- struct{}{}
	return func() { <-l }
}

func (m *memStore) WithFacilityLock(ctx context.Context, facilityID string, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	exists := m.facilities[facilityID]
	m.mu.Unlock()
	if !exists {
		return ErrFacilityNotFound
	}

	l := m.lockFor(facilityID)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l }()

	tx := &memTx{store: m}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.mu.Lock()
	m.rows = append(m.rows, tx.pending...)
	m.mu.Unlock()
	return nil
}

func (m *memStore) ListReservations(_ context.Context, facilityID string, from, to *time.Time) ([]model.Reservation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.rows {
		if r.FacilityID != facilityID {
			continue
		}
		if from != nil && (r.StartTime.Before(*from) || r.StartTime.After(*to)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *memStore) committed(facilityID string) []model.Reservation {
	out, _ := m.ListReservations(context.Background(), facilityID, nil, nil)
	return out
}

type memTx struct {
	store   *memStore
	pending []model.Reservation
}

func (t *memTx) CompanyExists(_ context.Context, companyID string) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.companies[companyID], nil
}

// ReservationsInWindow deliberately returns every row of every facility so
// that CheckOverlap's own filtering is exercised.
func (t *memTx) ReservationsInWindow(_ context.Context, _ string, _ Window) ([]model.Reservation, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return append([]model.Reservation(nil), t.store.rows...), nil
}

func (t *memTx) InsertReservation(ctx context.Context, r *model.Reservation) error {
	if t.store.insertDelay > 0 {
		select {
		case <-time.After(t.store.insertDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if t.store.insertErr != nil {
		return t.store.insertErr
	}
	t.pending = append(t.pending, *r)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	got  []model.Reservation
	fail error
}

func (p *recordingPublisher) PublishReservationCreated(_ context.Context, r model.Reservation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, r)
	return p.fail
}
