package game

import "time"

const (
	recentSlotGranularity = 5 * time.Minute
	recentSlotStep        = 10 * time.Minute
	recentSlotSpan        = 2 * time.Hour
	pastSlotMinutes       = 30
)

// TimeSlots lists selectable end-of-game times for day, most recent first.
//
// For today the list starts at now rounded down to five minutes and walks back
// in ten minute steps for two hours, stopping at midnight. For an earlier day it
// holds every half hour from 23:30 down to 00:00. Days after now yield nothing.
// Every slot is at or before now.
func TimeSlots(day, now time.Time) []time.Time {
	loc := now.Location()
	day = day.In(loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch {
	case dayStart.Equal(today):
		start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, loc)
		start = start.Add(-time.Duration(now.Minute()%int(recentSlotGranularity/time.Minute)) * time.Minute)
		limit := start.Add(-recentSlotSpan)
		if limit.Before(dayStart) {
			limit = dayStart
		}
		var slots []time.Time
		for t := start; !t.Before(limit); t = t.Add(-recentSlotStep) {
			slots = append(slots, t)
		}
		return slots
	case dayStart.Before(today):
		slots := make([]time.Time, 0, 24*60/pastSlotMinutes)
		for m := 24*60 - pastSlotMinutes; m >= 0; m -= pastSlotMinutes {
			slots = append(slots, time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, m, 0, 0, loc))
		}
		return slots
	default:
		return nil
	}
}
