package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/adviseline/advisory-scheduler/internal/audit"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
	"github.com/adviseline/advisory-scheduler/internal/payment"
	"github.com/adviseline/advisory-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Title         string
	Description   string
	RequestedDate time.Time
	DurationMin   int
	IsVirtual     bool

	// Paid appointments start in PENDING_PAYMENT and get a checkout
	// charge from the payment collaborator.
	Paid   bool
	Amount float64
}

type CreateResult struct {
	Appointment *models.Appointment
	CheckoutURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	store     domain.Store
	collector payment.Collector
	notifier  Notifier
	audit     AuditTrail
	avail     AvailabilityCache
	log       *zap.Logger
	now       func() time.Time
}

func NewCreateAppointment(
	store domain.Store,
	collector payment.Collector,
	notifier Notifier,
	auditDisp AuditTrail,
	avail AvailabilityCache,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		store:     store,
		collector: collector,
		notifier:  notifier,
		audit:     auditDisp,
		avail:     avail,
		log:       log,
		now:       timezone.Now,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	userID uint,
	in CreateInput,
) (*CreateResult, error) {

	// Validation happens before any store call so a rejection never
	// leaves partial state.
	if err := domain.ValidateNew(in.Title, in.RequestedDate, in.DurationMin, uc.now()); err != nil {
		return nil, err
	}

	paid := in.Paid && in.Amount > 0

	ap, err := uc.store.Create(ctx, domain.CreateInput{
		Title:         in.Title,
		Description:   in.Description,
		RequestedDate: in.RequestedDate,
		DurationMin:   in.DurationMin,
		IsVirtual:     in.IsVirtual,
		UserID:        userID,
		Status:        domain.InitialStatus(paid),
	})
	if err != nil {
		return nil, err
	}

	var checkoutURL string
	if paid {
		// The collaborator is invoked exactly once here. If it fails
		// the appointment simply stays in PENDING_PAYMENT; checkout
		// can be re-issued out of band.
		url, chargeErr := uc.collector.CreateCharge(ctx, ap, in.Amount)
		if chargeErr != nil {
			uc.log.Error("checkout charge failed",
				zap.String("appointment_id", ap.ID.String()),
				zap.Error(chargeErr),
			)
		}
		checkoutURL = url
	}

	invalidateDays(ctx, uc.avail, ap.RequestedDate)

	uc.notifier.Dispatch(domain.NewEvent(domain.EventCreated, ap, ""))
	uc.audit.Dispatch(audit.Entry{
		UserID:   &userID,
		Actor:    string(domain.ActorClient),
		Action:   string(domain.EventCreated),
		Entity:   "appointment",
		EntityID: ap.ID.String(),
	})

	return &CreateResult{Appointment: ap, CheckoutURL: checkoutURL}, nil
}
