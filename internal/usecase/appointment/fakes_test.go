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

var fixedNow = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Store honoring the optimistic status
// guard, so stale writes surface the same way the real one reports
// them.
type fakeStore struct {
	appointments map[uuid.UUID]*models.Appointment
	createCalls  int
	writeOps     []string
	slots        []domain.TimeSlot
	failWith     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{appointments: map[uuid.UUID]*models.Appointment{}}
}

func (s *fakeStore) put(ap *models.Appointment) {
	cp := *ap
	s.appointments[ap.ID] = &cp
}

func (s *fakeStore) Create(_ context.Context, in domain.CreateInput) (*models.Appointment, error) {
	s.createCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}

	ap := &models.Appointment{
		ID:            uuid.New(),
		Title:         in.Title,
		Description:   in.Description,
		Status:        string(in.Status),
		RequestedDate: in.RequestedDate,
		DurationMin:   in.DurationMin,
		IsVirtual:     in.IsVirtual,
		UserID:        in.UserID,
	}
	s.put(ap)
	return ap, nil
}

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (s *fakeStore) ListForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (s *fakeStore) ListForAdmin(context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range s.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (s *fakeStore) GetAvailability(context.Context, time.Time) ([]domain.TimeSlot, error) {
	return s.slots, nil
}

func (s *fakeStore) save(ap *models.Appointment, previous domain.Status, op string) (*models.Appointment, error) {
	s.writeOps = append(s.writeOps, op)
	if s.failWith != nil {
		return nil, s.failWith
	}

	current, ok := s.appointments[ap.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if current.Status != string(previous) {
		return nil, apperr.StaleStateError{ID: ap.ID.String()}
	}

	s.put(ap)
	cp := *ap
	return &cp, nil
}

func (s *fakeStore) Confirm(_ context.Context, ap *models.Appointment, prev domain.Status) (*models.Appointment, error) {
	return s.save(ap, prev, "confirm")
}

func (s *fakeStore) ProposeReschedule(_ context.Context, ap *models.Appointment, prev domain.Status) (*models.Appointment, error) {
	return s.save(ap, prev, "propose_reschedule")
}

func (s *fakeStore) Cancel(_ context.Context, ap *models.Appointment, prev domain.Status) (*models.Appointment, error) {
	return s.save(ap, prev, "cancel")
}

func (s *fakeStore) Reject(_ context.Context, ap *models.Appointment, prev domain.Status) (*models.Appointment, error) {
	return s.save(ap, prev, "reject")
}

func (s *fakeStore) Update(_ context.Context, ap *models.Appointment, prev domain.Status) (*models.Appointment, error) {
	return s.save(ap, prev, "update")
}

var _ domain.Store = (*fakeStore)(nil)

// --------- collaborator fakes ---------

type fakeNotifier struct {
	events []domain.Event
}

func (n *fakeNotifier) Dispatch(ev domain.Event) {
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) has(kind domain.EventKind) bool {
	for _, ev := range n.events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

type fakeAudit struct {
	entries []audit.Entry
}

func (a *fakeAudit) Dispatch(e audit.Entry) {
	a.entries = append(a.entries, e)
}

type fakeCollector struct {
	calls  int
	url    string
	err    error
	lastID uuid.UUID
}

func (c *fakeCollector) CreateCharge(_ context.Context, ap *models.Appointment, _ float64) (string, error) {
	c.calls++
	c.lastID = ap.ID
	return c.url, c.err
}

type fakeAvail struct {
	invalidated []time.Time
}

func (a *fakeAvail) Get(ctx context.Context, date time.Time, load cache.Loader) ([]domain.TimeSlot, error) {
	return load(ctx, date)
}

func (a *fakeAvail) Invalidate(_ context.Context, date time.Time) {
	a.invalidated = append(a.invalidated, date)
}

func (a *fakeAvail) invalidatedDay(day time.Time) bool {
	want := day.Format("2006-01-02")
	for _, d := range a.invalidated {
		if d.Format("2006-01-02") == want {
			return true
		}
	}
	return false
}

// seed inserts an appointment directly into the fake store.
func seed(s *fakeStore, status domain.Status, userID uint) *models.Appointment {
	ap := &models.Appointment{
		ID:            uuid.New(),
		Title:         "Portfolio review",
		Status:        string(status),
		RequestedDate: fixedNow.Add(48 * time.Hour),
		DurationMin:   60,
		UserID:        userID,
	}
	s.put(ap)
	return ap
}
