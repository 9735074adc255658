package availability

import (
	"testing"
	"time"

	"github.com/partyloft/partyloft/pkg/calendar"
	"github.com/partyloft/partyloft/pkg/shift"
	"github.com/stretchr/testify/assert"
)

var warsaw, _ = time.LoadLocation("Europe/Warsaw")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, warsaw)
}

func TestInferShifts_MetadataWins(t *testing.T) {
	// Interval overlaps T3 but the metadata says T1; metadata is trusted.
	entry := calendar.Entry{
		Title:     "Crew meeting",
		StartTime: at(2025, 6, 14, 18, 0),
		EndTime:   at(2025, 6, 14, 20, 0),
		Metadata:  calendar.EntryMetadata{ShiftCode: "T1"},
	}

	got := InferShifts(entry, day(2025, 6, 14), warsaw)
	assert.Equal(t, []shift.ID{shift.Midday}, got)
}

func TestInferShifts_InvalidMetadataFallsThrough(t *testing.T) {
	entry := calendar.Entry{
		Title:     "Birthday Ola #T2",
		StartTime: at(2025, 6, 14, 9, 0),
		EndTime:   at(2025, 6, 14, 10, 0),
		Metadata:  calendar.EntryMetadata{ShiftCode: "T7"},
	}

	got := InferShifts(entry, day(2025, 6, 14), warsaw)
	assert.Equal(t, []shift.ID{shift.Afternoon}, got)
}

func TestInferShifts_TitleTokenRegardlessOfInterval(t *testing.T) {
	// The interval would overlap T3, but the title names T1.
	entry := calendar.Entry{
		Title:     "rezerwacja telefoniczna #T1 (Kowalscy)",
		StartTime: at(2025, 6, 14, 18, 30),
		EndTime:   at(2025, 6, 14, 20, 0),
	}

	got := InferShifts(entry, day(2025, 6, 14), warsaw)
	assert.Equal(t, []shift.ID{shift.Midday}, got)
}

func TestInferShifts_OverlapFallback(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       []shift.ID
	}{
		{
			name:  "spans the gap between afternoon and evening",
			start: at(2025, 6, 14, 16, 30),
			end:   at(2025, 6, 14, 18, 30),
			want:  []shift.ID{shift.Afternoon, shift.Evening},
		},
		{
			name:  "fits entirely in the gap, blocks nothing",
			start: at(2025, 6, 14, 13, 30),
			end:   at(2025, 6, 14, 14, 30),
			want:  nil,
		},
		{
			name:  "ends exactly at a shift start, touching is not overlap",
			start: at(2025, 6, 14, 13, 45),
			end:   at(2025, 6, 14, 18, 0),
			want:  []shift.ID{shift.Afternoon},
		},
		{
			name:  "whole day event blocks every shift",
			start: at(2025, 6, 14, 0, 0),
			end:   at(2025, 6, 15, 0, 0),
			want:  []shift.ID{shift.Midday, shift.Afternoon, shift.Evening},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := calendar.Entry{Title: "Prywatne", StartTime: tt.start, EndTime: tt.end}
			got := InferShifts(entry, day(2025, 6, 14), warsaw)
			assert.Equal(t, tt.want, got)
		})
	}
}
