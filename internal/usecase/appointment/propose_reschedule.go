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

type ProposeReschedule struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	now      func() time.Time
}

func NewProposeReschedule(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
) *ProposeReschedule {
	return &ProposeReschedule{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		now:      timezone.Now,
	}
}

func (uc *ProposeReschedule) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uuid.UUID,
	suggested time.Time,
) (*models.Appointment, error) {

	ap, err := uc.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.ProposeReschedule(ap, domain.ActorAdmin, suggested, uc.now()); err != nil {
		return nil, err
	}
	claimAdmin(ap, domain.ActorAdmin, adminID)

	updated, err := uc.store.ProposeReschedule(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(domain.NewEvent(domain.EventRescheduled, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Actor:    string(domain.ActorAdmin),
		Action:   string(domain.EventRescheduled),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
