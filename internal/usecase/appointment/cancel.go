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

type CancelAppointment struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	avail    AvailabilityCache
	now      func() time.Time
}

func NewCancelAppointment(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
	avail AvailabilityCache,
) *CancelAppointment {
	return &CancelAppointment{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		avail:    avail,
		now:      timezone.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	actorID uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := loadForActor(ctx, uc.store, appointmentID, actor, actorID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	refund, err := domain.Cancel(ap, actor, uc.now())
	if err != nil {
		return nil, err
	}

	updated, err := uc.store.Cancel(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	invalidateDays(ctx, uc.avail, updated.EffectiveDate())

	uc.notifier.Dispatch(domain.NewEvent(domain.EventCancelled, updated, ""))
	if refund != nil {
		uc.notifier.Dispatch(*refund)
	}
	uc.audit.Dispatch(audit.Entry{
		UserID:   &actorID,
		Actor:    string(actor),
		Action:   string(domain.EventCancelled),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
