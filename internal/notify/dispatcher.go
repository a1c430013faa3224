package notify

import (
	"sync"

	"go.uber.org/zap"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
)

// Dispatcher decouples command handling from notification delivery: a
// buffered queue drained by a single worker. A full or closed queue
// drops the event rather than blocking the API.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	queue    chan domain.Event

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(notifier Notifier, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		log:      log,
		queue:    make(chan domain.Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.notifier.Notify(ev); err != nil {
			d.log.Error("notification delivery failed",
				zap.String("event", string(ev.Kind)),
				zap.String("appointment_id", ev.AppointmentID.String()),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.log.Warn("dispatcher closed, dropping event",
			zap.String("event", string(ev.Kind)),
			zap.String("appointment_id", ev.AppointmentID.String()),
		)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("event", string(ev.Kind)),
			zap.String("appointment_id", ev.AppointmentID.String()),
		)
	}
}

// Close stops accepting events and lets the worker drain what is
// already queued. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.closed {
		d.closed = true
		close(d.queue)
	}
}
