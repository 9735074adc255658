package availability

import (
	"strings"
	"time"

	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/shift"
)

// InferShifts maps one external calendar entry to the catalog shifts it
// blocks on the given day. The fallback order is fixed:
//
//  1. structured metadata naming a catalog shift is trusted directly;
//  2. otherwise the free-text title is scanned for a shift code token
//     (e.g. "#T2" anywhere in the text) and only that shift is marked;
//  3. otherwise the entry blocks every shift whose [start, end) window on
//     that day has a non-zero intersection with the entry's interval.
//     Intervals that merely touch do not intersect.
//
// Step 3 is the conservative path: an external event of unknown type blocks
// everything it overlaps in time.
func InferShifts(entry calendar.Entry, date time.Time, loc *time.Location) []shift.ID {
	if id := shift.ID(entry.Metadata.ShiftCode); shift.IsValid(id) {
		return []shift.ID{id}
	}

	if id, ok := shiftCodeInTitle(entry.Title); ok {
		return []shift.ID{id}
	}

	var blocked []shift.ID
	for _, s := range shift.All() {
		start, end := s.WindowOn(date, loc)
		if entry.StartTime.Before(end) && entry.EndTime.After(start) {
			blocked = append(blocked, s.ID)
		}
	}
	return blocked
}

// shiftCodeInTitle scans a human-entered title for a catalog shift code.
func shiftCodeInTitle(title string) (shift.ID, bool) {
	for _, s := range shift.All() {
		if strings.Contains(title, string(s.ID)) {
			return s.ID, true
		}
	}
	return "", false
}
