package availability

import (
	"time"

	"github.com/partyloft/partyloft/pkg/shift"
)

// Slot is one occupied (date, shift) pair.
type Slot struct {
	Date  time.Time
	Shift shift.ID
}

// Occupancy is the answer to "which shifts are taken on this date". When the
// external calendar could not be reached, Shifts still holds the local view
// and ExternalSynced is false so the UI can show a "not fully synced" hint.
type Occupancy struct {
	Shifts         []shift.ID
	ExternalSynced bool
}

// MonthOccupancy is the per-month variant used for calendar rendering.
type MonthOccupancy struct {
	Slots          []Slot
	ExternalSynced bool
}
