package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedHours_SameDay(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"full day shift", "09:00", "18:00", 9},
		{"short shift", "08:00", "13:00", 5},
		{"half hour", "12:00", "12:30", 0.5},
		{"quarter hours", "08:15", "16:45", 8.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ElapsedHours(tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestElapsedHours_CrossesMidnight(t *testing.T) {
	// end <= start means the interval wraps to the next day
	got, err := ElapsedHours("22:00", "06:00")
	require.NoError(t, err)
	assert.InDelta(t, 8, got, 1e-9)

	// equal times count as a full 24h wrap, never zero or negative
	got, err = ElapsedHours("08:00", "08:00")
	require.NoError(t, err)
	assert.InDelta(t, 24, got, 1e-9)

	got, err = ElapsedHours("23:30", "00:15")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestElapsedHours_Malformed(t *testing.T) {
	for _, s := range []string{"25:00", "9:00", "09:60", "0900", "", "ab:cd"} {
		_, err := ElapsedHours(s, "17:00")
		assert.Error(t, err, "start %q should be rejected", s)

		_, err = ElapsedHours("09:00", s)
		assert.Error(t, err, "end %q should be rejected", s)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.33, Round2(25.0/3))
	assert.Equal(t, 7.5, Round2(7.5))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestClock_CombineAndDateOf(t *testing.T) {
	clock, err := NewClock("Europe/Rome")
	require.NoError(t, err)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	instant, err := clock.Combine(date, "09:30")
	require.NoError(t, err)

	assert.Equal(t, 9, instant.Hour())
	assert.Equal(t, 30, instant.Minute())
	assert.Equal(t, "Europe/Rome", instant.Location().String())

	// DateOf is the inverse of Combine for any time of day
	assert.Equal(t, "2025-03-10", clock.DateOf(instant))

	late, err := clock.Combine(date, "23:45")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", clock.DateOf(late))
}

func TestClock_DateOfConvertsZone(t *testing.T) {
	clock, err := NewClock("Europe/Rome")
	require.NoError(t, err)

	// 23:30 UTC in winter is 00:30 next day in Rome
	instant := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-16", clock.DateOf(instant))
}

func TestNewClock_InvalidZone(t *testing.T) {
	_, err := NewClock("Mars/Olympus")
	assert.Error(t, err)
}
