package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/models"
)

type CreateInput struct {
	Title         string
	Description   string
	RequestedDate time.Time
	DurationMin   int
	IsVirtual     bool
	UserID        uint
	Status        Status
}

// Store is the external persistence boundary. Implementations own all
// durability and must serialize concurrent transitions on the same
// appointment, surfacing the losing write as a stale-state error.
type Store interface {
	// -------- Create / read --------
	Create(ctx context.Context, in CreateInput) (*models.Appointment, error)

	GetByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListForAdmin(ctx context.Context) ([]models.Appointment, error)

	// -------- Availability --------
	// GetAvailability is the conflict-aware view: presentation slots
	// minus the day's active bookings.
	GetAvailability(
		ctx context.Context,
		date time.Time,
	) ([]TimeSlot, error)

	// -------- State change --------
	// Each writes the given, already-validated entity; the previous
	// status is used as an optimistic guard.
	Confirm(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
	) (*models.Appointment, error)

	ProposeReschedule(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
	) (*models.Appointment, error)

	Cancel(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
	) (*models.Appointment, error)

	Reject(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
	) (*models.Appointment, error)
}
