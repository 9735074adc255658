package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// StubCalendar is an in-memory Calendar for tests. Setting FailReads or
// FailWrites makes the respective operations return an error, which is how
// tests simulate an unreachable external source.
type StubCalendar struct {
	data       map[string]Entry
	FailReads  bool
	FailWrites bool
	Deleted    []string
}

func NewStubCalendar() *StubCalendar {
	return &StubCalendar{data: map[string]Entry{}}
}

func (c *StubCalendar) ListEntries(ctx context.Context, from time.Time, to time.Time) ([]Entry, error) {
	if c.FailReads {
		return nil, errors.New("external calendar unreachable")
	}
	var entries []Entry
	for _, entry := range c.data {
		if entry.StartTime.Before(to) && entry.EndTime.After(from) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})
	return entries, nil
}

func (c *StubCalendar) UpsertEntry(ctx context.Context, entry Entry) (string, error) {
	if c.FailWrites {
		return "", errors.New("external calendar unreachable")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	c.data[entry.ID] = entry
	return entry.ID, nil
}

func (c *StubCalendar) DeleteEntry(ctx context.Context, entryID string) error {
	if c.FailWrites {
		return errors.New("external calendar unreachable")
	}
	if _, ok := c.data[entryID]; !ok {
		return errors.New("entry with given id not found")
	}
	delete(c.data, entryID)
	c.Deleted = append(c.Deleted, entryID)
	return nil
}

// Add seeds the stub with an entry and returns its id.
func (c *StubCalendar) Add(entry Entry) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	c.data[entry.ID] = entry
	return entry.ID
}

func (c *StubCalendar) Cleanup() {
	c.data = map[string]Entry{}
	c.Deleted = nil
}
