package reservation

import (
	"time"

	"github.com/partyloft/partyloft/pkg/pricing"
	"github.com/partyloft/partyloft/pkg/shift"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusModified  Status = "modified"
	StatusCancelled Status = "cancelled"
)

type Kind string

const (
	// KindReservation is a customer booking.
	KindReservation Kind = "reservation"
	// KindBlock is an administrative block of a shift, not priced.
	KindBlock Kind = "block"
)

// MinChildCount is the smallest bookable party.
const MinChildCount = 5

// Reservation occupies one shift on one date. The price fields below
// TotalPrice are snapshots frozen at creation time: they keep historical
// totals stable when the price configuration is edited later, and are never
// recomputed.
type Reservation struct {
	ID     int64
	Code   string
	Kind   Kind
	Status Status
	Date   time.Time
	Shift  shift.ID

	ContactName  string
	ContactEmail string
	ContactPhone string
	ChildName    string
	ChildAge     int

	ChildCount       int
	AdultCount       int
	MenuID           string
	AdultItems       []pricing.AdultLineItem
	WorkshopID       string
	Character        string
	Pinata           bool
	ExtensionMinutes int
	Notes            string

	TotalPrice       float64
	MenuUnitPrice    float64
	WeekendSurcharge float64
	WorkshopPrice    float64
	CharacterPrice   float64
	PinataPrice      float64
	ExtensionPrice   float64

	// CalendarEntryID is the id of the entry mirrored to the external
	// calendar, empty while unsynced.
	CalendarEntryID string
	CreatedAt       time.Time
}

// Active reports whether the reservation holds its slot.
func (r Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// CanTransition reports whether from may move to to through the status API.
// Only confirmed, modified and cancelled are settable this way, cancelled is
// terminal, and a no-op transition is not a transition.
func CanTransition(from, to Status) bool {
	if from == StatusCancelled || from == to {
		return false
	}
	switch to {
	case StatusConfirmed, StatusModified, StatusCancelled:
		return true
	}
	return false
}
