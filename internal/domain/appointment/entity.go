package appointment

import (
	"time"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Each action validates the transition for the acting party, then
// mutates the entity in place. Persistence is the caller's concern.

const MinDurationMin = 15

// ValidateNew checks the creation preconditions before anything
// touches the store.
func ValidateNew(title string, requestedDate time.Time, durationMin int, now time.Time) error {
	if title == "" {
		return apperr.ErrBusiness("missing_title", "title is required")
	}
	if durationMin < MinDurationMin {
		return apperr.ErrBusiness("duration_too_short", "duration must be ≥15 minutes")
	}
	if !requestedDate.After(now) {
		return apperr.ErrBusiness("date_in_past", "requested date must be in the future")
	}
	return nil
}

// Confirm sets the authoritative scheduled time. An admin confirming
// without an explicit date accepts the requested date; a client
// confirming accepts the admin's suggestion.
func Confirm(ap *models.Appointment, actor Actor, date *time.Time) error {
	if err := CanConfirm(Status(ap.Status), actor); err != nil {
		return err
	}

	confirmed := ap.RequestedDate
	switch {
	case date != nil:
		confirmed = *date
	case actor == ActorClient:
		if ap.SuggestedDate == nil {
			return apperr.ErrBusiness("no_suggestion", "no suggested date to accept")
		}
		confirmed = *ap.SuggestedDate
	case ap.SuggestedDate != nil && Status(ap.Status) == StatusRescheduled:
		confirmed = *ap.SuggestedDate
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedDate = &confirmed
	return nil
}

// ProposeReschedule records an admin counter-offer. The requested date
// stays untouched so the client can still see what they asked for.
func ProposeReschedule(ap *models.Appointment, actor Actor, suggested time.Time, now time.Time) error {
	if err := CanProposeReschedule(Status(ap.Status), actor); err != nil {
		return err
	}
	if !suggested.After(now) {
		return apperr.ErrBusiness("date_in_past", "suggested date must be in the future")
	}

	ap.Status = string(StatusRescheduled)
	ap.SuggestedDate = &suggested
	return nil
}

type EditInput struct {
	Title         string
	Description   string
	RequestedDate time.Time
	DurationMin   int
}

// Edit applies a client revision and drops the negotiation back to
// pending. A pending-payment appointment keeps waiting on payment.
func Edit(ap *models.Appointment, actor Actor, in EditInput, now time.Time) error {
	if err := CanEdit(Status(ap.Status), actor); err != nil {
		return err
	}
	if err := ValidateNew(in.Title, in.RequestedDate, in.DurationMin, now); err != nil {
		return err
	}

	ap.Title = in.Title
	ap.Description = in.Description
	ap.RequestedDate = in.RequestedDate
	ap.DurationMin = in.DurationMin
	ap.SuggestedDate = nil
	ap.ConfirmedDate = nil
	if Status(ap.Status) != StatusPendingPayment {
		ap.Status = string(StatusPendingReview)
	}
	return nil
}

// Cancel moves the appointment to its cancelled terminal state. When
// an admin cancels an already-confirmed appointment a RefundRequired
// event is returned for the notification collaborator; the engine
// itself tracks no refund state.
func Cancel(ap *models.Appointment, actor Actor, now time.Time) (*Event, error) {
	if err := CanCancel(Status(ap.Status), actor); err != nil {
		return nil, err
	}

	wasConfirmed := Status(ap.Status) == StatusConfirmed

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now

	if actor == ActorAdmin && wasConfirmed {
		ev := NewEvent(EventRefundRequired, ap, "admin cancelled a confirmed appointment")
		return &ev, nil
	}
	return nil, nil
}

// Reject is the admin's terminal refusal of a pending or rescheduled
// appointment.
func Reject(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanReject(Status(ap.Status), actor); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	ap.CancelledAt = &now
	return nil
}

// Complete closes out a confirmed appointment whose scheduled time has
// passed.
func Complete(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanComplete(Status(ap.Status), actor); err != nil {
		return err
	}
	if !ap.EffectiveDate().Before(now) {
		return apperr.ErrBusiness("not_finished", "appointment has not taken place yet")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// MarkPaid advances a paid appointment into admin review once the
// payment collaborator reports success.
func MarkPaid(ap *models.Appointment) error {
	if err := CanMarkPaid(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusPendingReview)
	return nil
}
