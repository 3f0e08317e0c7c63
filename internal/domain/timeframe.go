package domain

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe selects which transactions an analytics view covers.
type Timeframe string

const (
	// TimeframeWeek is a rolling window of the last 7 days.
	TimeframeWeek Timeframe = "week"
	// TimeframeMonth is the calendar month of now.
	TimeframeMonth Timeframe = "month"
	// TimeframeQuarter is a rolling window of the last 3 calendar months.
	TimeframeQuarter Timeframe = "quarter"
	// TimeframeAll applies no filter.
	TimeframeAll Timeframe = "all"
)

// DefaultTimeframe is used when a caller does not pick one.
const DefaultTimeframe = TimeframeMonth

// ParseTimeframe parses a timeframe name. The empty string maps to
// DefaultTimeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return DefaultTimeframe, nil
	case TimeframeWeek, TimeframeMonth, TimeframeQuarter, TimeframeAll:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, s)
	}
}

// Contains reports whether t falls inside the timeframe anchored at now.
// Zero timestamps only belong to TimeframeAll.
func (tf Timeframe) Contains(t, now time.Time) bool {
	if tf == TimeframeAll {
		return true
	}
	if t.IsZero() {
		return false
	}

	t = t.In(now.Location())

	switch tf {
	case TimeframeWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case TimeframeMonth:
		return sameMonth(t, now)
	case TimeframeQuarter:
		return !t.Before(now.AddDate(0, -3, 0))
	default:
		return false
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// calendarDay returns noon of the given date in loc. Midnight does not
// exist on some DST transition days, noon always does.
func calendarDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}

// daysInMonth returns the number of days in t's calendar month.
func daysInMonth(t time.Time) int {
	return calendarDay(t.Year(), t.Month()+1, 0, t.Location()).Day()
}

// DaysLeftInMonth counts the days from now to the end of its month,
// including today. It is never less than 1.
func DaysLeftInMonth(now time.Time) int {
	left := daysInMonth(now) - now.Day() + 1
	if left < 1 {
		return 1
	}
	return left
}
