package calendar_sync

import (
	"context"
	"testing"
	"time"

	"github.com/partyloft/partyloft/internal/event_bus"
	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	entryIDs map[int64]string
}

func (s *stubStore) SetCalendarEntryID(ctx context.Context, id int64, entryID string) error {
	s.entryIDs[id] = entryID
	return nil
}

func setupSyncer(t *testing.T) (*event_bus.EventBus, *calendar.StubCalendar, *stubStore) {
	t.Helper()
	bus := event_bus.NewEventBus()
	cal := calendar.NewStubCalendar()
	store := &stubStore{entryIDs: map[int64]string{}}

	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	NewSyncer(cal, store, loc).Register(bus)
	return bus, cal, store
}

func createdEvent() event_bus.ReservationCreated {
	return event_bus.ReservationCreated{
		ID:        7,
		Code:      "R-7F3K2M",
		Kind:      "reservation",
		Summary:   "Party: Zosia (T2)",
		Date:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		ShiftCode: "T2",
	}
}

func TestSyncer_PublishesCreatedReservation(t *testing.T) {
	bus, cal, store := setupSyncer(t)

	err := bus.Publish(event_bus.NewEvent(context.Background(),
		event_bus.ReservationCreatedEvent, createdEvent()))
	require.NoError(t, err)

	entries, err := cal.ListEntries(context.Background(),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Contains(t, entries[0].Title, "#T2")
	assert.Equal(t, "T2", entries[0].Metadata.ShiftCode)
	assert.Equal(t, "R-7F3K2M", entries[0].Metadata.ReservationCode)
	assert.Equal(t, entries[0].ID, store.entryIDs[7])
}

func TestSyncer_WriteFailureIsSwallowed(t *testing.T) {
	bus, cal, store := setupSyncer(t)
	cal.FailWrites = true

	err := bus.Publish(event_bus.NewEvent(context.Background(),
		event_bus.ReservationCreatedEvent, createdEvent()))

	// The failure must not propagate to the publisher.
	assert.NoError(t, err)
	assert.Empty(t, store.entryIDs)
}

func TestSyncer_CancellationRemovesEntry(t *testing.T) {
	bus, cal, _ := setupSyncer(t)

	entryID := cal.Add(calendar.Entry{
		Title:     "Party: Zosia (T2) #T2",
		StartTime: time.Date(2025, 6, 14, 14, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 14, 17, 0, 0, 0, time.UTC),
	})

	err := bus.Publish(event_bus.NewEvent(context.Background(),
		event_bus.ReservationCancelledEvent, event_bus.ReservationCancelled{
			ID: 7, Code: "R-7F3K2M", CalendarEntryID: entryID,
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{entryID}, cal.Deleted)
}

func TestSyncer_CancellationWithoutEntryIsNoop(t *testing.T) {
	bus, cal, _ := setupSyncer(t)

	err := bus.Publish(event_bus.NewEvent(context.Background(),
		event_bus.ReservationCancelledEvent, event_bus.ReservationCancelled{
			ID: 7, Code: "R-7F3K2M", CalendarEntryID: "",
		}))
	assert.NoError(t, err)
	assert.Empty(t, cal.Deleted)
}
