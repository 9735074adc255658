package shift

import "time"

// ID identifies one of the venue's fixed daily shifts.
type ID string

const (
	Midday    ID = "T1"
	Afternoon ID = "T2"
	Evening   ID = "T3"
)

// Shift is a named wall-clock window on a calendar day. Windows are
// half-open: a shift occupies [Start, End).
type Shift struct {
	ID        ID
	Name      string
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

var catalog = []Shift{
	{ID: Midday, Name: "Midday", StartHour: 11, StartMin: 0, EndHour: 13, EndMin: 30},
	{ID: Afternoon, Name: "Afternoon", StartHour: 14, StartMin: 30, EndHour: 17, EndMin: 0},
	{ID: Evening, Name: "Evening", StartHour: 18, StartMin: 0, EndHour: 20, EndMin: 30},
}

// All returns the catalog in its fixed order.
func All() []Shift {
	shifts := make([]Shift, len(catalog))
	copy(shifts, catalog)
	return shifts
}

// ByID returns the catalog entry for the given id.
func ByID(id ID) (Shift, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Shift{}, false
}

// IsValid reports whether id names a catalog shift.
func IsValid(id ID) bool {
	_, ok := ByID(id)
	return ok
}

// WindowOn returns the shift's concrete [start, end) interval on the given
// calendar day in the given location.
func (s Shift) WindowOn(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), s.StartHour, s.StartMin, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), s.EndHour, s.EndMin, 0, 0, loc)
	return start, end
}
