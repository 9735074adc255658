package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogOrderAndGaps(t *testing.T) {
	shifts := All()
	assert.Len(t, shifts, 3)

	loc := time.UTC
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)
	for i := 1; i < len(shifts); i++ {
		_, prevEnd := shifts[i-1].WindowOn(day, loc)
		nextStart, _ := shifts[i].WindowOn(day, loc)
		assert.True(t, prevEnd.Before(nextStart), "shift %s must start after %s ends", shifts[i].ID, shifts[i-1].ID)
	}
}

func TestByID(t *testing.T) {
	s, ok := ByID(Afternoon)
	assert.True(t, ok)
	assert.Equal(t, "Afternoon", s.Name)

	_, ok = ByID("T9")
	assert.False(t, ok)
	assert.False(t, IsValid("T9"))
}

func TestWindowOn(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	assert.NoError(t, err)

	day := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	s, _ := ByID(Evening)
	start, end := s.WindowOn(day, loc)

	assert.Equal(t, time.Date(2025, 3, 8, 18, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 8, 20, 30, 0, 0, loc), end)
}
