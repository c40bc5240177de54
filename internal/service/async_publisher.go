package service

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/facility-booking/internal/booking"
	"github.com/iliyamo/facility-booking/internal/model"
)

// ErrPublishQueueFull is returned when the event buffer has no free slot.
var ErrPublishQueueFull = errors.New("reservation event queue full")

// AsyncPublisher buffers reservation events and hands them to the wrapped
// publisher from a single background goroutine, so a slow or absent broker
// never delays the booking request.  Run must be started for events to
// leave the buffer.
type AsyncPublisher struct {
	next    booking.Publisher
	events  chan model.Reservation
	logger  *log.Logger
	timeout time.Duration
}

// NewAsyncPublisher wraps next with a buffer of size events.  timeout bounds
// each delivery attempt.
func NewAsyncPublisher(next booking.Publisher, size int, timeout time.Duration, logger *log.Logger) *AsyncPublisher {
	if size < 1 {
		size = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{
		next:    next,
		events:  make(chan model.Reservation, size),
		logger:  logger,
		timeout: timeout,
	}
}

// PublishReservationCreated enqueues r without blocking.
func (p *AsyncPublisher) PublishReservationCreated(_ context.Context, r model.Reservation) error {
	select {
	case p.events <- r:
		return nil
	default:
		return ErrPublishQueueFull
	}
}

// Run delivers queued events until ctx is cancelled.  Events still buffered
// at that point get one more attempt each within the delivery timeout.
func (p *AsyncPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case r := <-p.events:
			p.deliver(r)
		}
	}
}

func (p *AsyncPublisher) drain() {
	deadline := time.Now().Add(p.timeout)
	for time.Now().Before(deadline) {
		select {
		case r := <-p.events:
			p.deliver(r)
		default:
			return
		}
	}
	if n := len(p.events); n > 0 {
		p.logger.Warnj(log.JSON{"message": "reservation events dropped on shutdown", "count": n})
	}
}

func (p *AsyncPublisher) deliver(r model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.next.PublishReservationCreated(ctx, r); err != nil {
		p.logger.Warnj(log.JSON{
			"message":        "reservation event not published",
			"reservation_id": r.ID,
			"error":          err.Error(),
		})
	}
}
