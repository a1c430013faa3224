package appointment

import (
	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/models"
)

// ===============================
// Domain Events
// ===============================

type EventKind string

const (
	EventCreated        EventKind = "appointment_created"
	EventConfirmed      EventKind = "appointment_confirmed"
	EventRescheduled    EventKind = "appointment_rescheduled"
	EventEdited         EventKind = "appointment_edited"
	EventCancelled      EventKind = "appointment_cancelled"
	EventRejected       EventKind = "appointment_rejected"
	EventCompleted      EventKind = "appointment_completed"
	EventPaymentCleared EventKind = "appointment_payment_cleared"

	// EventRefundRequired signals that an admin cancelled a confirmed
	// appointment and a refund workflow must be initiated externally.
	EventRefundRequired EventKind = "refund_required"
)

type Event struct {
	Kind          EventKind
	AppointmentID uuid.UUID
	UserID        uint
	AdminID       *uint
	Reason        string
}

func NewEvent(kind EventKind, ap *models.Appointment, reason string) Event {
	return Event{
		Kind:          kind,
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		AdminID:       ap.AdminID,
		Reason:        reason,
	}
}
