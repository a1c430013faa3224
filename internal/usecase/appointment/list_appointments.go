package appointment

import (
	"context"
	"time"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
	"github.com/adviseline/advisory-scheduler/internal/timezone"
)

// ListAppointments routes to the role-appropriate store query and runs
// the filter engine for display-ready output. Reads are pure and safe
// to re-invoke.
type ListAppointments struct {
	store domain.Store
	now   func() time.Time
}

func NewListAppointments(store domain.Store) *ListAppointments {
	return &ListAppointments{
		store: store,
		now:   timezone.Now,
	}
}

func (uc *ListAppointments) ExecuteForUser(
	ctx context.Context,
	userID uint,
	f domain.Filter,
	scope *domain.DateScope,
) ([]models.Appointment, error) {

	list, err := uc.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return domain.Classify(list, f, scope, uc.now()), nil
}

func (uc *ListAppointments) ExecuteForAdmin(
	ctx context.Context,
	f domain.Filter,
	scope *domain.DateScope,
) ([]models.Appointment, error) {

	list, err := uc.store.ListForAdmin(ctx)
	if err != nil {
		return nil, err
	}

	return domain.Classify(list, f, scope, uc.now()), nil
}
