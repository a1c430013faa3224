package appointment

import "time"

// Business-hours window for presentation slots: one slot per hour,
// 09:00 up to but not including 21:00.
const (
	BusinessDayStartHour = 9
	BusinessDayEndHour   = 21
	SlotMinutes          = 60
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s TimeSlot) Overlaps(start, end time.Time) bool {
	// Half-open intervals: [s.Start,s.End) vs [start,end).
	return s.Start.Before(end) && start.Before(s.End)
}

// GenerateSlots enumerates the candidate bookable slots for a calendar
// day. Pure function of day: always 12 ascending hourly slots in the
// day's location, regardless of weekday. Conflict detection against
// real bookings is the store's job, not this one's.
func GenerateSlots(day time.Time) []TimeSlot {
	loc := day.Location()

	slots := make([]TimeSlot, 0, BusinessDayEndHour-BusinessDayStartHour)
	for h := BusinessDayStartHour; h < BusinessDayEndHour; h++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc)
		slots = append(slots, TimeSlot{
			Start: start,
			End:   start.Add(SlotMinutes * time.Minute),
		})
	}
	return slots
}
