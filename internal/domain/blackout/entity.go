// internal/domain/blackout/entity.go
package blackout

import "time"

// Window is an operator-declared interval during which no visits should
// be scheduled. Windows are advisory (a visit may still be booked over
// one) and immutable once created; an edit is a delete plus recreate.
type Window struct {
	ID        string    `json:"id" db:"id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Quick-fill presets: pure range constructors relative to a given local
// date, used by the calendar's one-click blocking buttons.

// FullDay blocks the whole local day containing date.
func FullDay(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Morning blocks 09:00 to 14:00 of the local day containing date.
func Morning(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.Local)
	return start, time.Date(date.Year(), date.Month(), date.Day(), 14, 0, 0, 0, time.Local)
}

// Afternoon blocks 15:00 to 20:00 of the local day containing date.
func Afternoon(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 15, 0, 0, 0, time.Local)
	return start, time.Date(date.Year(), date.Month(), date.Day(), 20, 0, 0, 0, time.Local)
}
