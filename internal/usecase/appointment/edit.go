package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/audit"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
	"github.com/adviseline/advisory-scheduler/internal/timezone"
)

// EditAppointment lets the requesting client revise a still-negotiable
// appointment; any pending admin suggestion is discarded and the
// negotiation restarts from pending.
type EditAppointment struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	avail    AvailabilityCache
	now      func() time.Time
}

func NewEditAppointment(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
	avail AvailabilityCache,
) *EditAppointment {
	return &EditAppointment{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		avail:    avail,
		now:      timezone.Now,
	}
}

func (uc *EditAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uuid.UUID,
	in domain.EditInput,
) (*models.Appointment, error) {

	ap, err := loadForActor(ctx, uc.store, appointmentID, domain.ActorClient, userID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	priorDay := ap.EffectiveDate()
	if err := domain.Edit(ap, domain.ActorClient, in, uc.now()); err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	invalidateDays(ctx, uc.avail, priorDay, updated.EffectiveDate())

	uc.notifier.Dispatch(domain.NewEvent(domain.EventEdited, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &userID,
		Actor:    string(domain.ActorClient),
		Action:   string(domain.EventEdited),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
