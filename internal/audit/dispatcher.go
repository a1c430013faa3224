package audit

import "go.uber.org/zap"

type Entry struct {
	UserID   *uint
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Entry
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Entry, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for e := range d.queue {
		if err := d.logger.Log(
			e.UserID,
			e.Actor,
			e.Action,
			e.Entity,
			e.EntityID,
			e.Metadata,
		); err != nil {
			d.log.Error("audit write failed", zap.String("action", e.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(e Entry) {
	select {
	case d.queue <- e:
	default:
		// Full queue: drop the record, never block the API.
		d.log.Warn("audit queue full, dropping entry", zap.String("action", e.Action))
	}
}
