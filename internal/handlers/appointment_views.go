package handlers

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

// AppointmentView is the wire shape for both roles. Clients see the
// reduced status vocabulary (both pending flavors as "PENDING"), the
// raw engine status stays visible to admins.
type AppointmentView struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	RequestedDate time.Time  `json:"requested_date"`
	SuggestedDate *time.Time `json:"suggested_date,omitempty"`
	ConfirmedDate *time.Time `json:"confirmed_date,omitempty"`
	EffectiveDate time.Time  `json:"effective_date"`
	DurationMin   int        `json:"duration_min"`
	IsVirtual     bool       `json:"is_virtual"`
	UserID        uint       `json:"user_id"`
	AdminID       *uint      `json:"admin_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toView(ap *models.Appointment, clientFacing bool) AppointmentView {
	status := ap.Status
	if clientFacing {
		status = domain.Status(ap.Status).DisplayLabel()
	}

	return AppointmentView{
		ID:            ap.ID,
		Title:         ap.Title,
		Description:   ap.Description,
		Status:        status,
		RequestedDate: ap.RequestedDate,
		SuggestedDate: ap.SuggestedDate,
		ConfirmedDate: ap.ConfirmedDate,
		EffectiveDate: ap.EffectiveDate(),
		DurationMin:   ap.DurationMin,
		IsVirtual:     ap.IsVirtual,
		UserID:        ap.UserID,
		AdminID:       ap.AdminID,
		CreatedAt:     ap.CreatedAt,
		UpdatedAt:     ap.UpdatedAt,
	}
}

func toViews(aps []models.Appointment, clientFacing bool) []AppointmentView {
	out := make([]AppointmentView, 0, len(aps))
	for i := range aps {
		out = append(out, toView(&aps[i], clientFacing))
	}
	return out
}
