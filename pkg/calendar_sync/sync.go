package calendar_sync

import (
	"context"
	"fmt"
	"time"

	"github.com/partyloft/partyloft/internal/event_bus"
	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/shift"
	log "github.com/sirupsen/logrus"
)

// writeTimeout bounds each external calendar write.
const writeTimeout = 10 * time.Second

// EntryIDStore persists the external entry id on the reservation record once
// the entry exists, so cancellation can find it again.
type EntryIDStore interface {
	SetCalendarEntryID(ctx context.Context, id int64, entryID string) error
}

// Syncer mirrors reservation lifecycle events to the external calendar.
// Every operation is best-effort: a failed sync is logged and dropped, the
// reservation itself is never touched. A reconciliation job can replay
// unsynced records later; this process does not retry.
type Syncer struct {
	cal   calendar.Writer
	store EntryIDStore
	loc   *time.Location
}

func NewSyncer(cal calendar.Writer, store EntryIDStore, loc *time.Location) *Syncer {
	return &Syncer{cal: cal, store: store, loc: loc}
}

// Register subscribes the syncer to reservation lifecycle events.
func (s *Syncer) Register(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.ReservationCreatedEvent,
		func(e event_bus.EventT[event_bus.ReservationCreated]) error {
			s.onCreated(e.Context(), e.Data)
			return nil
		})
	event_bus.SubscribeTyped(bus, event_bus.ReservationCancelledEvent,
		func(e event_bus.EventT[event_bus.ReservationCancelled]) error {
			s.removeEntry(e.Context(), e.Data.Code, e.Data.CalendarEntryID)
			return nil
		})
	event_bus.SubscribeTyped(bus, event_bus.ReservationDeletedEvent,
		func(e event_bus.EventT[event_bus.ReservationDeleted]) error {
			s.removeEntry(e.Context(), e.Data.Code, e.Data.CalendarEntryID)
			return nil
		})
}

func (s *Syncer) onCreated(ctx context.Context, data event_bus.ReservationCreated) {
	entry, err := s.entryFor(data)
	if err != nil {
		log.Errorf("calendar sync: %v", err)
		return
	}

	// The booking response may already be on the wire; the sync must not die
	// with the request context.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	entryID, err := s.cal.UpsertEntry(ctx, entry)
	if err != nil {
		log.Errorf("calendar sync: could not publish %s to external calendar: %v", data.Code, err)
		return
	}
	if err := s.store.SetCalendarEntryID(ctx, data.ID, entryID); err != nil {
		log.Errorf("calendar sync: could not store external entry id for %s: %v", data.Code, err)
	}
}

func (s *Syncer) removeEntry(ctx context.Context, code, entryID string) {
	if entryID == "" {
		log.Debugf("calendar sync: %s has no external entry to remove", code)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := s.cal.DeleteEntry(ctx, entryID); err != nil {
		log.Errorf("calendar sync: could not remove external entry for %s: %v", code, err)
	}
}

func (s *Syncer) entryFor(data event_bus.ReservationCreated) (calendar.Entry, error) {
	sh, ok := shift.ByID(shift.ID(data.ShiftCode))
	if !ok {
		return calendar.Entry{}, fmt.Errorf("reservation %s references unknown shift %q", data.Code, data.ShiftCode)
	}
	start, end := sh.WindowOn(data.Date, s.loc)

	return calendar.Entry{
		Title:     fmt.Sprintf("%s #%s", data.Summary, data.ShiftCode),
		StartTime: start,
		EndTime:   end,
		Metadata: calendar.EntryMetadata{
			ShiftCode:       data.ShiftCode,
			ReservationCode: data.Code,
		},
	}, nil
}
