package calendar

import (
	"context"
	"time"
)

// EntryMetadata is the structured tag this system attaches to the external
// calendar entries it writes, and reads back from entries it finds there.
type EntryMetadata struct {
	ShiftCode       string `json:"shiftCode,omitempty"`
	ReservationCode string `json:"reservationCode,omitempty"`
}

// Entry is one event in the external calendar. Entries created by other
// parties usually carry no metadata; only their title and interval are
// available for shift inference.
type Entry struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Metadata  EntryMetadata
}

// Reader lists external calendar entries intersecting a time range.
type Reader interface {
	ListEntries(ctx context.Context, from time.Time, to time.Time) ([]Entry, error)
}

// Writer publishes reservations to the external calendar. Callers treat every
// write as best-effort.
type Writer interface {
	// UpsertEntry creates the entry, or updates it when entry.ID is set, and
	// returns the external id.
	UpsertEntry(ctx context.Context, entry Entry) (string, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

// Calendar is the full external calendar contract.
type Calendar interface {
	Reader
	Writer
}
