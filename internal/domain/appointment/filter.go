package appointment

import (
	"sort"
	"time"

	"github.com/adviseline/advisory-scheduler/internal/models"
)

// ===============================
// Filter Engine
// ===============================

type Filter string

const (
	FilterUpcoming  Filter = "upcoming"
	FilterPending   Filter = "pending"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
	FilterAll       Filter = "all"
)

func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterUpcoming, FilterPending, FilterPast, FilterCancelled:
		return Filter(s)
	}
	return FilterAll
}

// DateScope optionally narrows the collection by calendar equality on
// the requested date, before the status predicate runs.
type DateScopeKind string

const (
	ScopeDay   DateScopeKind = "day"
	ScopeMonth DateScopeKind = "month"
)

type DateScope struct {
	Kind DateScopeKind
	Date time.Time
}

func (s DateScope) matches(t time.Time) bool {
	d := s.Date
	switch s.Kind {
	case ScopeDay:
		return t.Year() == d.Year() && t.Month() == d.Month() && t.Day() == d.Day()
	case ScopeMonth:
		return t.Year() == d.Year() && t.Month() == d.Month()
	}
	return true
}

// Classify produces the display-ready view of a collection for one
// filter. Pure and idempotent: the input is copied, never mutated, and
// identical inputs yield identical output.
func Classify(list []models.Appointment, f Filter, scope *DateScope, now time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(list))
	for _, ap := range list {
		if scope != nil && !scope.matches(ap.RequestedDate) {
			continue
		}
		if matchesFilter(&ap, f, now) {
			out = append(out, ap)
		}
	}

	sortForFilter(out, f)
	return out
}

func matchesFilter(ap *models.Appointment, f Filter, now time.Time) bool {
	st := Status(ap.Status)

	switch f {
	case FilterUpcoming:
		return st == StatusConfirmed && ap.EffectiveDate().After(now)

	case FilterPending:
		return st.IsPending() || st == StatusRescheduled

	case FilterPast:
		switch st {
		case StatusConfirmed, StatusCompleted, StatusRescheduled,
			StatusPendingPayment, StatusPendingReview:
			return ap.EffectiveDate().Before(now)
		}
		return false

	case FilterCancelled:
		return st == StatusCancelled || st == StatusRejected
	}

	// FilterAll and anything unknown: no predicate.
	return true
}

func sortForFilter(list []models.Appointment, f Filter) {
	switch f {
	case FilterUpcoming:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EffectiveDate().Before(list[j].EffectiveDate())
		})
	case FilterPending:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].RequestedDate.Before(list[j].RequestedDate)
		})
	case FilterPast:
		sort.SliceStable(list, func(i, j int) bool {
			return list[j].EffectiveDate().Before(list[i].EffectiveDate())
		})
	case FilterCancelled:
		sort.SliceStable(list, func(i, j int) bool {
			return list[j].RequestedDate.Before(list[i].RequestedDate)
		})
	}
	// FilterAll keeps the input order.
}
