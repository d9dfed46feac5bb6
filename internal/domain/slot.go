package domain

import "time"

// Slot represents a bookable interval. Slots are computed on every request and never stored.
type Slot struct {
	StartAt        time.Time
	EndAt          time.Time
	ProfessionalID *int64 // nil in legacy clinic-level mode
}

// Key returns the slot key used for booked-set lookups
func (s Slot) Key() SlotKey {
	return NewSlotKey(s.StartAt, s.ProfessionalID)
}

// SlotKey identifies a taken slot: start instant plus professional (0 when absent)
type SlotKey struct {
	StartUnixMilli int64
	ProfessionalID int64
}

// NewSlotKey builds a key from the start instant and an optional professional id
func NewSlotKey(startAt time.Time, professionalID *int64) SlotKey {
	key := SlotKey{StartUnixMilli: startAt.UnixMilli()}
	if professionalID != nil {
		key.ProfessionalID = *professionalID
	}
	return key
}

// TimeWindow is a half-open interval [From, To)
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Contains returns true if [start, end) lies fully inside the window
func (w TimeWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.From) && !end.After(w.To)
}

// IsEmpty returns true if the window holds no instants
func (w TimeWindow) IsEmpty() bool {
	return !w.From.Before(w.To)
}
