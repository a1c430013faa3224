package notify

import (
	"go.uber.org/zap"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
)

// Notifier is the external delivery collaborator. Delivery (push,
// email, refund desk) happens outside the engine.
type Notifier interface {
	Notify(ev domain.Event) error
}

// LogNotifier is the default sink: it records lifecycle events on the
// structured log. Refund signals are logged at warn so operators see
// them even with info filtered out.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ev domain.Event) error {
	fields := []zap.Field{
		zap.String("event", string(ev.Kind)),
		zap.String("appointment_id", ev.AppointmentID.String()),
		zap.Uint("user_id", ev.UserID),
		zap.String("reason", ev.Reason),
	}

	if ev.Kind == domain.EventRefundRequired {
		n.log.Warn("refund workflow required", fields...)
		return nil
	}

	n.log.Info("appointment event", fields...)
	return nil
}
