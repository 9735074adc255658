package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/shift"
	"github.com/stretchr/testify/assert"
)

type stubSlots struct {
	slots []Slot
	err   error
}

func (s *stubSlots) ActiveSlots(ctx context.Context, from, to time.Time) ([]Slot, error) {
	if s.err != nil {
		return nil, s.err
	}
	var result []Slot
	for _, slot := range s.slots {
		if !slot.Date.Before(from) && slot.Date.Before(to) {
			result = append(result, slot)
		}
	}
	return result, nil
}

func TestOccupiedShifts_MergesLocalAndExternal(t *testing.T) {
	date := day(2025, 6, 14)
	local := &stubSlots{slots: []Slot{{Date: at(2025, 6, 14, 0, 0), Shift: shift.Midday}}}

	external := calendar.NewStubCalendar()
	external.Add(calendar.Entry{
		Title:     "Warsztaty plastyczne",
		StartTime: at(2025, 6, 14, 18, 15),
		EndTime:   at(2025, 6, 14, 19, 30),
	})
	// Also occupied locally; the union deduplicates.
	external.Add(calendar.Entry{
		Title:     "Blok #T1",
		StartTime: at(2025, 6, 14, 11, 0),
		EndTime:   at(2025, 6, 14, 12, 0),
	})

	service := NewService(local, external, warsaw)
	got, err := service.OccupiedShifts(context.Background(), date)

	assert.NoError(t, err)
	assert.True(t, got.ExternalSynced)
	assert.Equal(t, []shift.ID{shift.Midday, shift.Evening}, got.Shifts)
}

func TestOccupiedShifts_ExternalDownFallsBackToLocal(t *testing.T) {
	local := &stubSlots{slots: []Slot{{Date: at(2025, 6, 14, 0, 0), Shift: shift.Afternoon}}}
	external := calendar.NewStubCalendar()
	external.FailReads = true

	service := NewService(local, external, warsaw)
	got, err := service.OccupiedShifts(context.Background(), day(2025, 6, 14))

	assert.NoError(t, err)
	assert.False(t, got.ExternalSynced)
	assert.Equal(t, []shift.ID{shift.Afternoon}, got.Shifts)
}

func TestOccupiedShifts_NoExternalCalendarConfigured(t *testing.T) {
	local := &stubSlots{}
	service := NewService(local, nil, warsaw)

	got, err := service.OccupiedShifts(context.Background(), day(2025, 6, 14))
	assert.NoError(t, err)
	assert.True(t, got.ExternalSynced)
	assert.Empty(t, got.Shifts)
}

func TestOccupiedShifts_MalformedEntriesSkipped(t *testing.T) {
	local := &stubSlots{}
	external := calendar.NewStubCalendar()
	// Inverted interval; must be dropped without failing the query.
	external.Add(calendar.Entry{
		Title:     "corrupted",
		StartTime: at(2025, 6, 14, 19, 0),
		EndTime:   at(2025, 6, 14, 18, 0),
	})
	external.Add(calendar.Entry{
		Title:     "healthy",
		StartTime: at(2025, 6, 14, 18, 30),
		EndTime:   at(2025, 6, 14, 19, 0),
	})

	service := NewService(local, external, warsaw)
	got, err := service.OccupiedShifts(context.Background(), day(2025, 6, 14))

	assert.NoError(t, err)
	assert.True(t, got.ExternalSynced)
	assert.Equal(t, []shift.ID{shift.Evening}, got.Shifts)
}

func TestOccupiedShifts_LocalFailureIsFatal(t *testing.T) {
	local := &stubSlots{err: errors.New("db down")}
	service := NewService(local, calendar.NewStubCalendar(), warsaw)

	_, err := service.OccupiedShifts(context.Background(), day(2025, 6, 14))
	assert.Error(t, err)
}

func TestOccupiedForMonth(t *testing.T) {
	local := &stubSlots{slots: []Slot{
		{Date: at(2025, 6, 3, 0, 0), Shift: shift.Evening},
		{Date: at(2025, 6, 14, 0, 0), Shift: shift.Midday},
	}}

	external := calendar.NewStubCalendar()
	// Spans two days, blocks the evening shift on the 20th and the midday
	// shift on the 21st.
	external.Add(calendar.Entry{
		Title:     "Remont sali",
		StartTime: at(2025, 6, 20, 19, 0),
		EndTime:   at(2025, 6, 21, 12, 0),
	})

	service := NewService(local, external, warsaw)
	got, err := service.OccupiedForMonth(context.Background(), 2025, time.June)

	assert.NoError(t, err)
	assert.True(t, got.ExternalSynced)

	want := []struct {
		date  string
		shift shift.ID
	}{
		{"2025-06-03", shift.Evening},
		{"2025-06-14", shift.Midday},
		{"2025-06-20", shift.Evening},
		{"2025-06-21", shift.Midday},
	}
	assert.Len(t, got.Slots, len(want))
	for i, w := range want {
		assert.Equal(t, w.date, got.Slots[i].Date.Format(time.DateOnly))
		assert.Equal(t, w.shift, got.Slots[i].Shift)
	}
}
