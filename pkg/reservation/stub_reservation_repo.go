package reservation

import (
	"context"
	"time"

	"github.com/partyloft/partyloft/pkg/availability"
	"github.com/partyloft/partyloft/pkg/shift"
)

// StubRepository is an in-memory Repository for tests. It enforces the same
// active-slot uniqueness the Postgres partial index does, so racing creations
// can be exercised without a database.
type StubRepository struct {
	nextID int64
	data   map[string]Reservation
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Reservation{}}
}

func (s *StubRepository) Create(ctx context.Context, res Reservation) (Reservation, error) {
	for _, existing := range s.data {
		if existing.Active() && sameDay(existing.Date, res.Date) && existing.Shift == res.Shift {
			return Reservation{}, ErrSlotTaken
		}
	}
	s.nextID++
	res.ID = s.nextID
	s.data[res.Code] = res
	return res, nil
}

func (s *StubRepository) FindByCode(ctx context.Context, code string) (*Reservation, error) {
	if res, ok := s.data[code]; ok {
		return &res, nil
	}
	return nil, nil
}

func (s *StubRepository) FindActiveByDateShift(ctx context.Context, date time.Time, shiftID shift.ID) (*Reservation, error) {
	for _, res := range s.data {
		if res.Active() && sameDay(res.Date, date) && res.Shift == shiftID {
			return &res, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) UpdateStatus(ctx context.Context, code string, status Status) (*Reservation, error) {
	res, ok := s.data[code]
	if !ok {
		return nil, nil
	}
	res.Status = status
	s.data[code] = res
	return &res, nil
}

func (s *StubRepository) SetCalendarEntryID(ctx context.Context, id int64, entryID string) error {
	for code, res := range s.data {
		if res.ID == id {
			res.CalendarEntryID = entryID
			s.data[code] = res
			return nil
		}
	}
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, code string) (*Reservation, error) {
	res, ok := s.data[code]
	if !ok {
		return nil, nil
	}
	delete(s.data, code)
	return &res, nil
}

func (s *StubRepository) ActiveSlots(ctx context.Context, from time.Time, to time.Time) ([]availability.Slot, error) {
	var slots []availability.Slot
	for _, res := range s.data {
		if res.Active() && !res.Date.Before(from) && res.Date.Before(to) {
			slots = append(slots, availability.Slot{Date: res.Date, Shift: res.Shift})
		}
	}
	return slots, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Reservation{}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
