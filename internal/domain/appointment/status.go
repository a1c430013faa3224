package appointment

import "github.com/adviseline/advisory-scheduler/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPendingReview  Status = "PENDING_ADMIN_REVIEW"
	StatusConfirmed      Status = "CONFIRMED"
	StatusRescheduled    Status = "RESCHEDULED"
	StatusCancelled      Status = "CANCELLED"
	StatusRejected       Status = "REJECTED"
	StatusCompleted      Status = "COMPLETED"
)

// DisplayLabel is the client-facing vocabulary: both pending flavors
// render as a single "PENDING".
func (s Status) DisplayLabel() string {
	if s.IsPending() {
		return "PENDING"
	}
	return string(s)
}

func (s Status) IsPending() bool {
	return s == StatusPendingPayment || s == StatusPendingReview
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Actors
// ===============================

type Actor string

const (
	ActorClient Actor = "client"
	ActorAdmin  Actor = "admin"
	ActorSystem Actor = "system"
)

// InitialStatus picks the entry state at creation: paid appointments
// wait on the payment collaborator first, free ones go straight to
// admin review.
func InitialStatus(paid bool) Status {
	if paid {
		return StatusPendingPayment
	}
	return StatusPendingReview
}

// ===============================
// Transition guards
// ===============================

func invalid(action string, current Status, actor Actor) error {
	return apperr.InvalidTransition(action, string(current), string(actor))
}

// CanConfirm gates the confirm transition: an admin may confirm a
// pending or rescheduled appointment; a client may only confirm
// (accept) an admin suggestion on a rescheduled one.
func CanConfirm(current Status, actor Actor) error {
	switch actor {
	case ActorAdmin:
		if current.IsPending() || current == StatusRescheduled {
			return nil
		}
	case ActorClient:
		if current == StatusRescheduled {
			return nil
		}
	}
	return invalid("confirm", current, actor)
}

// CanProposeReschedule gates the admin counter-offer on a pending
// appointment.
func CanProposeReschedule(current Status, actor Actor) error {
	if actor == ActorAdmin && current.IsPending() {
		return nil
	}
	return invalid("propose_reschedule", current, actor)
}

// CanEdit gates client mutation of a still-negotiable appointment.
func CanEdit(current Status, actor Actor) error {
	if actor == ActorClient && (current.IsPending() || current == StatusRescheduled) {
		return nil
	}
	return invalid("edit", current, actor)
}

// CanCancel: either party, from any non-terminal state.
func CanCancel(current Status, actor Actor) error {
	if actor != ActorClient && actor != ActorAdmin {
		return invalid("cancel", current, actor)
	}
	if current.IsTerminal() {
		return invalid("cancel", current, actor)
	}
	return nil
}

// CanReject: admin only, while the appointment is still negotiable.
func CanReject(current Status, actor Actor) error {
	if actor == ActorAdmin && (current.IsPending() || current == StatusRescheduled) {
		return nil
	}
	return invalid("reject", current, actor)
}

// CanComplete: admin or system, only once confirmed.
func CanComplete(current Status, actor Actor) error {
	if (actor == ActorAdmin || actor == ActorSystem) && current == StatusConfirmed {
		return nil
	}
	return invalid("complete", current, actor)
}

// CanMarkPaid gates the payment-collaborator callback advancing a paid
// appointment into admin review.
func CanMarkPaid(current Status) error {
	if current == StatusPendingPayment {
		return nil
	}
	return invalid("mark_paid", current, ActorSystem)
}
