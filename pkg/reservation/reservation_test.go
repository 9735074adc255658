package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusRequested, StatusConfirmed, true},
		{StatusRequested, StatusModified, true},
		{StatusRequested, StatusCancelled, true},
		{StatusConfirmed, StatusModified, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusModified, StatusConfirmed, true},
		{StatusModified, StatusCancelled, true},

		// cancelled is terminal
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusModified, false},
		{StatusCancelled, StatusCancelled, false},

		// requested is never settable, neither are no-ops or junk
		{StatusConfirmed, StatusRequested, false},
		{StatusModified, StatusRequested, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusRequested, Status("archived"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestNewCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewCode()
		assert.NoError(t, err)
		assert.Len(t, code, 2+codeLength)
		assert.Equal(t, "R-", code[:2])
		assert.False(t, seen[code], "codes must not repeat: %s", code)
		seen[code] = true
	}
}
