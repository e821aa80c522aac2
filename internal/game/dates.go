package game

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

const (
	// DateLayout is how dates are shown on keyboards and typed by users: 24.10.16.
	DateLayout = "02.01.06"
	// ClockLayout is the time-of-day format: 13:20.
	ClockLayout = "15:04"
	// StampLayout is used in summaries and announcements.
	StampLayout = "02.01.06, 15:04"

	dateChoiceDays = 90
)

var (
	ErrBadDate  = errors.New("unrecognized date")
	ErrBadClock = errors.New("unrecognized time")
)

var dateLayouts = []string{DateLayout, "02.01.2006", "2.1.06", "2.1.2006", "2006-01-02"}

var relativeDates = func() *when.Parser {
	w := when.New(nil)
	w.Add(ru.All...)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseDate reads a calendar day typed by the user, in dd.mm.yy form or as a
// relative phrase ("вчера", "yesterday"). The result is midnight in now's location.
func ParseDate(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrBadDate
	}
	loc := now.Location()
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}

	r, err := relativeDates.Parse(strings.ToLower(text), now)
	if err != nil || r == nil {
		return time.Time{}, ErrBadDate
	}
	t := r.Time.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseClock reads a time of day such as 13:20 and places it on day.
func ParseClock(text string, day time.Time) (time.Time, error) {
	clock, err := time.Parse(ClockLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, ErrBadClock
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

// DateChoices lists today and the preceding days, most recent first.
func DateChoices(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]time.Time, 0, dateChoiceDays)
	for i := 0; i < dateChoiceDays; i++ {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// isFutureDay reports whether day starts after now.
func isFutureDay(day, now time.Time) bool {
	return day.After(now)
}
