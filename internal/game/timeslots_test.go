package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clocks(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(ClockLayout))
	}
	return out
}

func TestTimeSlots_Today(t *testing.T) {
	now := time.Date(2024, 1, 15, 20, 7, 42, 0, msk)
	slots := clocks(TimeSlots(time.Date(2024, 1, 15, 0, 0, 0, 0, msk), now))

	require.Len(t, slots, 13)
	assert.Equal(t, "20:05", slots[0])
	assert.Equal(t, "19:55", slots[1])
	assert.Equal(t, "18:05", slots[12])
}

func TestTimeSlots_TodayStopsAtMidnight(t *testing.T) {
	now := time.Date(2024, 1, 15, 1, 3, 0, 0, msk)
	slots := clocks(TimeSlots(time.Date(2024, 1, 15, 0, 0, 0, 0, msk), now))

	assert.Equal(t, []string{"01:00", "00:50", "00:40", "00:30", "00:20", "00:10", "00:00"}, slots)
}

func TestTimeSlots_PastDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, msk)
	slots := TimeSlots(time.Date(2024, 1, 10, 0, 0, 0, 0, msk), now)

	require.Len(t, slots, 48)
	assert.Equal(t, "23:30", slots[0].Format(ClockLayout))
	assert.Equal(t, "00:00", slots[47].Format(ClockLayout))
	for _, s := range slots {
		assert.Equal(t, 10, s.Day())
		assert.False(t, s.After(now))
	}
}

func TestTimeSlots_FutureDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, msk)
	assert.Nil(t, TimeSlots(time.Date(2024, 1, 16, 0, 0, 0, 0, msk), now))
}
