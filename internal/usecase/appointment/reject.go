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

type RejectAppointment struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	now      func() time.Time
}

func NewRejectAppointment(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
) *RejectAppointment {
	return &RejectAppointment{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		now:      timezone.Now,
	}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.Reject(ap, domain.ActorAdmin, uc.now()); err != nil {
		return nil, err
	}
	claimAdmin(ap, domain.ActorAdmin, adminID)

	updated, err := uc.store.Reject(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(domain.NewEvent(domain.EventRejected, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Actor:    string(domain.ActorAdmin),
		Action:   string(domain.EventRejected),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
