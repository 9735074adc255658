package event_bus

import "time"

const (
	// ReservationCreatedEvent is published after a reservation or block has
	// been persisted. Subscribers publish it to the external calendar.
	ReservationCreatedEvent EventType = "reservation.created"
	// ReservationCancelledEvent is published after a status transition to
	// cancelled. The record stays; only the external entry goes away.
	ReservationCancelledEvent EventType = "reservation.cancelled"
	// ReservationDeletedEvent is published after a hard delete.
	ReservationDeletedEvent EventType = "reservation.deleted"
)

type ReservationCreated struct {
	ID        int64
	Code      string
	Kind      string
	Summary   string
	Date      time.Time
	ShiftCode string
}

type ReservationCancelled struct {
	ID              int64
	Code            string
	CalendarEntryID string
}

type ReservationDeleted struct {
	ID              int64
	Code            string
	CalendarEntryID string
}
