package appointment

import (
	"context"
	"time"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
)

// GetAvailability serves the conflict-aware free slots for a day,
// read-through cached when a cache is wired.
type GetAvailability struct {
	store domain.Store
	avail AvailabilityCache
}

func NewGetAvailability(store domain.Store, avail AvailabilityCache) *GetAvailability {
	return &GetAvailability{
		store: store,
		avail: avail,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date time.Time,
) ([]domain.TimeSlot, error) {

	if uc.avail == nil {
		return uc.store.GetAvailability(ctx, date)
	}

	return uc.avail.Get(ctx, date, uc.store.GetAvailability)
}
