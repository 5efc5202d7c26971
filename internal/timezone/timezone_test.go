package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBack(t *testing.T) {
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
	assert.False(t, IsValid(""))
}

func TestParseLocal(t *testing.T) {
	at, err := ParseLocal("2026-03-01", "09:30", "Asia/Bangkok")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 2, 30, 0, 0, time.UTC), at.UTC())

	_, err = ParseLocal("2026-02-30", "09:30", "Asia/Bangkok")
	assert.Error(t, err)
	_, err = ParseLocal("2026-03-01", "9.30", "Asia/Bangkok")
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2026-03-01", "Asia/Bangkok")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, 0, start.Hour())
}
