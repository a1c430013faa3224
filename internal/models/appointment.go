package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500" json:"description,omitempty"`

	Status string `gorm:"size:30;default:'PENDING_ADMIN_REVIEW'" json:"status"`

	RequestedDate time.Time  `json:"requested_date"`
	SuggestedDate *time.Time `json:"suggested_date,omitempty"`
	ConfirmedDate *time.Time `json:"confirmed_date,omitempty"`

	DurationMin int  `gorm:"not null" json:"duration_min"`
	IsVirtual   bool `gorm:"default:false" json:"is_virtual"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	AdminID *uint `gorm:"index" json:"admin_id,omitempty"`
	Admin   *User `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"admin,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveDate is the timestamp that decides whether the appointment
// is past or upcoming: the confirmed date once an admin accepted one,
// the originally requested date otherwise. A pending suggestion never
// takes precedence.
func (a *Appointment) EffectiveDate() time.Time {
	if a.ConfirmedDate != nil {
		return *a.ConfirmedDate
	}
	return a.RequestedDate
}

func (a *Appointment) EndTime() time.Time {
	return a.EffectiveDate().Add(time.Duration(a.DurationMin) * time.Minute)
}
