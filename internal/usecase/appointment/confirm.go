package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/audit"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

// ConfirmAppointment covers both sides of the negotiation: an admin
// confirming a pending or rescheduled request, and a client accepting
// an admin's suggested date.
type ConfirmAppointment struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	avail    AvailabilityCache
}

func NewConfirmAppointment(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
	avail AvailabilityCache,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		avail:    avail,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	actorID uint,
	appointmentID uuid.UUID,
	date *time.Time,
) (*models.Appointment, error) {

	ap, err := loadForActor(ctx, uc.store, appointmentID, actor, actorID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	priorDay := ap.EffectiveDate()
	if err := domain.Confirm(ap, actor, date); err != nil {
		return nil, err
	}
	claimAdmin(ap, actor, actorID)

	updated, err := uc.store.Confirm(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	invalidateDays(ctx, uc.avail, priorDay, updated.EffectiveDate())

	uc.notifier.Dispatch(domain.NewEvent(domain.EventConfirmed, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &actorID,
		Actor:    string(actor),
		Action:   string(domain.EventConfirmed),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
