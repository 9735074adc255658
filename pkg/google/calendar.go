package google

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/partyloft/partyloft/internal/config"
	"github.com/partyloft/partyloft/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrNotConfigured = fmt.Errorf("google calendar integration is not configured")

// Calendar talks to one Google calendar and implements calendar.Calendar.
// Entries written by this system carry their metadata as a JSON blob in the
// event description; entries created by other parties are returned with
// title and interval only.
type Calendar struct {
	service    *gcal.Service
	calendarID string
}

// NewCalendar builds the client from a stored OAuth refresh token. The venue
// operator runs the consent flow once, out of band, and puts the resulting
// refresh token in the configuration.
func NewCalendar(ctx context.Context, cfg config.Google) (*Calendar, error) {
	if cfg.CalendarId == "" || cfg.RefreshToken == "" {
		return nil, ErrNotConfigured
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauthgoogle.Endpoint,
		Scopes:       []string{gcal.CalendarScope},
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	service, err := gcal.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		err := fmt.Errorf("unable to create Google Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}

	return &Calendar{service: service, calendarID: cfg.CalendarId}, nil
}

func (c *Calendar) ListEntries(ctx context.Context, from time.Time, to time.Time) ([]calendar.Entry, error) {
	result, err := c.service.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}

	entries := make([]calendar.Entry, 0, len(result.Items))
	for _, item := range result.Items {
		entries = append(entries, googleEventToEntry(item))
	}
	return entries, nil
}

func (c *Calendar) UpsertEntry(ctx context.Context, entry calendar.Entry) (string, error) {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		err := fmt.Errorf("unable to marshal entry metadata: %w", err)
		log.Error(err)
		return "", err
	}

	googleEvent := &gcal.Event{
		Summary:     entry.Title,
		Description: string(metadata),
		Start:       &gcal.EventDateTime{DateTime: entry.StartTime.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: entry.EndTime.Format(time.RFC3339)},
	}

	var stored *gcal.Event
	if entry.ID == "" {
		stored, err = c.service.Events.Insert(c.calendarID, googleEvent).Context(ctx).Do()
	} else {
		stored, err = c.service.Events.Update(c.calendarID, entry.ID, googleEvent).Context(ctx).Do()
	}
	if err != nil {
		err := fmt.Errorf("unable to upsert event in Google Calendar: %w", err)
		log.Error(err)
		return "", err
	}
	return stored.Id, nil
}

func (c *Calendar) DeleteEntry(ctx context.Context, entryID string) error {
	if err := c.service.Events.Delete(c.calendarID, entryID).Context(ctx).Do(); err != nil {
		err := fmt.Errorf("unable to delete event from Google Calendar: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func googleEventToEntry(item *gcal.Event) calendar.Entry {
	entry := calendar.Entry{
		ID:        item.Id,
		Title:     item.Summary,
		StartTime: googleTime(item.Start),
		EndTime:   googleTime(item.End),
	}
	if item.Description != "" {
		if err := json.Unmarshal([]byte(item.Description), &entry.Metadata); err != nil {
			// Human-entered description; the entry still counts, the
			// resolver falls back to title and interval heuristics.
			log.Debugf("external entry %q has no parsable metadata", item.Summary)
		}
	}
	return entry
}

// googleTime handles both timed and all-day events; all-day events carry a
// date without a time component.
func googleTime(t *gcal.EventDateTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			log.Warnf("could not parse event time %q: %v", t.DateTime, err)
			return time.Time{}
		}
		return parsed
	}
	parsed, err := time.Parse(time.DateOnly, t.Date)
	if err != nil {
		log.Warnf("could not parse event date %q: %v", t.Date, err)
		return time.Time{}
	}
	return parsed
}
