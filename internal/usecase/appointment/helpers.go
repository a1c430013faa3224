package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	"github.com/adviseline/advisory-scheduler/internal/audit"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/infra/cache"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

// Notifier hands domain events to the external notification
// collaborator; delivery is fire-and-forget from the command's view.
type Notifier interface {
	Dispatch(ev domain.Event)
}

// AuditTrail records successful transitions.
type AuditTrail interface {
	Dispatch(e audit.Entry)
}

// AvailabilityCache serves and invalidates the cached day availability.
// A nil cache disables caching entirely.
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time, load cache.Loader) ([]domain.TimeSlot, error)
	Invalidate(ctx context.Context, date time.Time)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// invalidateDays drops the cached availability for every day a write
// touched. A transition that moves an appointment across days must
// clear both the old day and the new one.
func invalidateDays(ctx context.Context, avail AvailabilityCache, days ...time.Time) {
	if avail == nil {
		return
	}
	for i, day := range days {
		dup := false
		for _, prev := range days[:i] {
			if sameDay(prev, day) {
				dup = true
				break
			}
		}
		if !dup {
			avail.Invalidate(ctx, day)
		}
	}
}

// loadForActor fetches the appointment and enforces ownership: clients
// only reach their own records, admins reach everything.
func loadForActor(
	ctx context.Context,
	store domain.Store,
	id uuid.UUID,
	actor domain.Actor,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == domain.ActorClient && ap.UserID != actorID {
		return nil, apperr.ErrUnauthorized
	}

	return ap, nil
}

// claimAdmin records the first admin to act on an appointment; an
// existing assignment stays.
func claimAdmin(ap *models.Appointment, actor domain.Actor, actorID uint) {
	if actor == domain.ActorAdmin && ap.AdminID == nil {
		id := actorID
		ap.AdminID = &id
	}
}
