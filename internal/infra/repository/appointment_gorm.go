package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

type AppointmentGormStore struct {
	db *gorm.DB
}

func NewAppointmentGormStore(db *gorm.DB) *AppointmentGormStore {
	return &AppointmentGormStore{db: db}
}

// statuses that block a slot on the calendar
var activeStatuses = []string{
	string(domain.StatusPendingPayment),
	string(domain.StatusPendingReview),
	string(domain.StatusConfirmed),
	string(domain.StatusRescheduled),
}

func mapErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.NetworkError{Op: op, Err: err}
}

// --------------------------------------------------
// Create / read
// --------------------------------------------------

func (s *AppointmentGormStore) Create(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Appointment, error) {

	ap := models.Appointment{
		ID:            uuid.New(),
		Title:         in.Title,
		Description:   in.Description,
		Status:        string(in.Status),
		RequestedDate: in.RequestedDate,
		DurationMin:   in.DurationMin,
		IsVirtual:     in.IsVirtual,
		UserID:        in.UserID,
	}

	if err := s.db.WithContext(ctx).Create(&ap).Error; err != nil {
		return nil, mapErr("create", err)
	}

	return &ap, nil
}

func (s *AppointmentGormStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, mapErr("get", err)
	}

	return &ap, nil
}

func (s *AppointmentGormStore) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Admin").
		Where("user_id = ?", userID).
		Order("requested_date ASC").
		Find(&aps).Error; err != nil {
		return nil, mapErr("list_for_user", err)
	}

	return aps, nil
}

func (s *AppointmentGormStore) ListForAdmin(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("requested_date ASC").
		Find(&aps).Error; err != nil {
		return nil, mapErr("list_for_admin", err)
	}

	return aps, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// GetAvailability removes the day's active bookings from the candidate
// presentation slots. The effective date of each booking decides which
// slots it blocks.
func (s *AppointmentGormStore) GetAvailability(
	ctx context.Context,
	date time.Time,
) ([]domain.TimeSlot, error) {

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	var booked []models.Appointment
	if err := s.db.WithContext(ctx).
		Select("requested_date", "confirmed_date", "duration_min").
		Where(
			"status IN ? AND COALESCE(confirmed_date, requested_date) >= ? AND COALESCE(confirmed_date, requested_date) < ?",
			activeStatuses, dayStart, dayEnd,
		).
		Find(&booked).Error; err != nil {
		return nil, mapErr("availability", err)
	}

	free := make([]domain.TimeSlot, 0, 12)
	for _, slot := range domain.GenerateSlots(date) {
		conflict := false
		for _, ap := range booked {
			if slot.Overlaps(ap.EffectiveDate(), ap.EndTime()) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}

	return free, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

// save persists a validated transition with the previous status as an
// optimistic guard; a lost race surfaces as StaleState so the caller
// re-fetches instead of blindly retrying the write.
func (s *AppointmentGormStore) save(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
	op string,
) (*models.Appointment, error) {

	res := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(previous)).
		Updates(map[string]any{
			"title":          ap.Title,
			"description":    ap.Description,
			"status":         ap.Status,
			"requested_date": ap.RequestedDate,
			"suggested_date": ap.SuggestedDate,
			"confirmed_date": ap.ConfirmedDate,
			"duration_min":   ap.DurationMin,
			"admin_id":       ap.AdminID,
			"cancelled_at":   ap.CancelledAt,
			"completed_at":   ap.CompletedAt,
		})

	if res.Error != nil {
		return nil, mapErr(op, res.Error)
	}

	if res.RowsAffected == 0 {
		// Row gone or status moved under us.
		var exists int64
		s.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Count(&exists)
		if exists == 0 {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.StaleStateError{ID: ap.ID.String()}
	}

	return s.GetByID(ctx, ap.ID)
}

func (s *AppointmentGormStore) Confirm(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
) (*models.Appointment, error) {
	return s.save(ctx, ap, previous, "confirm")
}

func (s *AppointmentGormStore) ProposeReschedule(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
) (*models.Appointment, error) {
	return s.save(ctx, ap, previous, "propose_reschedule")
}

func (s *AppointmentGormStore) Cancel(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
) (*models.Appointment, error) {
	return s.save(ctx, ap, previous, "cancel")
}

func (s *AppointmentGormStore) Reject(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
) (*models.Appointment, error) {
	return s.save(ctx, ap, previous, "reject")
}

func (s *AppointmentGormStore) Update(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
) (*models.Appointment, error) {
	return s.save(ctx, ap, previous, "update")
}

// Compile-time check
var _ domain.Store = (*AppointmentGormStore)(nil)
