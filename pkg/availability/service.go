package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/shift"
	log "github.com/sirupsen/logrus"
)

// externalFetchTimeout bounds every external calendar call. Past it the
// external source is treated as degraded and the local view is returned.
const externalFetchTimeout = 5 * time.Second

// ReservationSlots is the local source of truth: every non-cancelled
// reservation or block in the given range, as (date, shift) pairs.
type ReservationSlots interface {
	ActiveSlots(ctx context.Context, from time.Time, to time.Time) ([]Slot, error)
}

// Service merges local reservation state with the external calendar feed to
// answer occupancy queries.
type Service struct {
	reservations ReservationSlots
	external     calendar.Reader
	loc          *time.Location
}

// NewService builds the resolver. external may be nil when no external
// calendar is configured; occupancy is then local-only and reported as synced
// since there is no source to fall behind.
func NewService(reservations ReservationSlots, external calendar.Reader, loc *time.Location) *Service {
	return &Service{reservations: reservations, external: external, loc: loc}
}

// OccupiedShifts returns the set of occupied shifts on the given date.
func (s *Service) OccupiedShifts(ctx context.Context, date time.Time) (Occupancy, error) {
	dayStart, dayEnd := s.dayWindow(date)

	localSlots, err := s.reservations.ActiveSlots(ctx, dayStart, dayEnd)
	if err != nil {
		return Occupancy{}, fmt.Errorf("failed to load local reservations for %s: %w", date.Format(time.DateOnly), err)
	}

	occupied := map[shift.ID]bool{}
	for _, slot := range localSlots {
		occupied[slot.Shift] = true
	}

	entries, synced := s.fetchExternal(ctx, dayStart, dayEnd)
	for _, entry := range entries {
		for _, id := range InferShifts(entry, date, s.loc) {
			occupied[id] = true
		}
	}

	return Occupancy{Shifts: sortedShifts(occupied), ExternalSynced: synced}, nil
}

// OccupiedForMonth applies the same merge per day across a month and returns
// a flat list of occupied (date, shift) pairs.
func (s *Service) OccupiedForMonth(ctx context.Context, year int, month time.Month) (MonthOccupancy, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	localSlots, err := s.reservations.ActiveSlots(ctx, monthStart, monthEnd)
	if err != nil {
		return MonthOccupancy{}, fmt.Errorf("failed to load local reservations for %d-%02d: %w", year, month, err)
	}

	occupied := map[time.Time]map[shift.ID]bool{}
	mark := func(day time.Time, id shift.ID) {
		if occupied[day] == nil {
			occupied[day] = map[shift.ID]bool{}
		}
		occupied[day][id] = true
	}
	for _, slot := range localSlots {
		day := time.Date(slot.Date.Year(), slot.Date.Month(), slot.Date.Day(), 0, 0, 0, 0, s.loc)
		mark(day, slot.Shift)
	}

	entries, synced := s.fetchExternal(ctx, monthStart, monthEnd)
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)
		for _, entry := range entries {
			if !entry.StartTime.Before(dayEnd) || !entry.EndTime.After(day) {
				continue
			}
			for _, id := range InferShifts(entry, day, s.loc) {
				mark(day, id)
			}
		}
	}

	result := MonthOccupancy{ExternalSynced: synced}
	for day, shifts := range occupied {
		for _, id := range sortedShifts(shifts) {
			result.Slots = append(result.Slots, Slot{Date: day, Shift: id})
		}
	}
	sort.Slice(result.Slots, func(i, j int) bool {
		if !result.Slots[i].Date.Equal(result.Slots[j].Date) {
			return result.Slots[i].Date.Before(result.Slots[j].Date)
		}
		return result.Slots[i].Shift < result.Slots[j].Shift
	})
	return result, nil
}

// fetchExternal lists external entries intersecting [from, to). A fetch
// failure is non-fatal: it logs, reports the feed as out of sync, and the
// caller proceeds with local data only. Malformed entries are dropped one by
// one without rejecting the rest.
func (s *Service) fetchExternal(ctx context.Context, from, to time.Time) ([]calendar.Entry, bool) {
	if s.external == nil {
		return nil, true
	}

	fetchCtx, cancel := context.WithTimeout(ctx, externalFetchTimeout)
	defer cancel()

	entries, err := s.external.ListEntries(fetchCtx, from, to)
	if err != nil {
		log.Warnf("external calendar unavailable, answering from local data only: %v", err)
		return nil, false
	}

	valid := entries[:0]
	for _, entry := range entries {
		if !entry.EndTime.After(entry.StartTime) {
			log.Debugf("skipping malformed external entry %q (%s - %s)",
				entry.Title, entry.StartTime, entry.EndTime)
			continue
		}
		valid = append(valid, entry)
	}
	return valid, true
}

// dayWindow interprets date as a calendar day in the venue's location,
// regardless of the location the caller parsed it in.
func (s *Service) dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

func sortedShifts(set map[shift.ID]bool) []shift.ID {
	ids := make([]shift.ID, 0, len(set))
	for _, s := range shift.All() {
		if set[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
