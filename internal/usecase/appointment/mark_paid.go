package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/audit"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

// MarkPaid is the payment provider's webhook landing: a successful
// charge advances the appointment from PENDING_PAYMENT into admin
// review.
type MarkPaid struct {
	store    domain.Store
	notifier Notifier
	audit    AuditTrail
}

func NewMarkPaid(
	store domain.Store,
	notifier Notifier,
	auditDisp AuditTrail,
) *MarkPaid {
	return &MarkPaid{
		store:    store,
		notifier: notifier,
		audit:    auditDisp,
	}
}

func (uc *MarkPaid) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.MarkPaid(ap); err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(domain.NewEvent(domain.EventPaymentCleared, updated, ""))
	uc.audit.Dispatch(audit.Entry{
		Actor:    string(domain.ActorSystem),
		Action:   string(domain.EventPaymentCleared),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
