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

// CompleteAppointment closes out confirmed appointments whose
// scheduled time has passed. Triggered by an admin or by a sweep job
// acting as the system.
type CompleteAppointment struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
	now      func() time.Time
}

func NewCompleteAppointment(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
) *CompleteAppointment {
	return &CompleteAppointment{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
		now:      timezone.Now,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	actorID uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.Complete(ap, actor, uc.now()); err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(domain.NewEvent(domain.EventCompleted, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &actorID,
		Actor:    string(actor),
		Action:   string(domain.EventCompleted),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
