package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when the start day falls after the end day.
var ErrInvalidDateRange = errors.New("start date is after end date")

// DefaultRangeDays is how far back the default range reaches.
const DefaultRangeDays = 90

// DateRange is a closed interval covering whole calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes start to the beginning of its day and end to the
// last microsecond of its day. The time of day of either argument is ignored.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
	}
	if r.Start.After(r.End) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// DefaultDateRange covers the last DefaultRangeDays days up to and including now.
func DefaultDateRange(now time.Time) DateRange {
	r, _ := NewDateRange(now.AddDate(0, 0, -DefaultRangeDays), now)
	return r
}

// Contains reports whether t lies inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfDay returns 00:00:00 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999000, t.Location())
}

// ParseDateRange parses YYYY-MM-DD bounds in now's location. An empty
// bound takes its value from DefaultDateRange(now).
func ParseDateRange(start, end string, now time.Time) (DateRange, error) {
	def := DefaultDateRange(now)
	s, e := def.Start, def.End

	if start != "" {
		t, err := time.ParseInLocation(time.DateOnly, start, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("parsing start date: %w", err)
		}
		s = t
	}
	if end != "" {
		t, err := time.ParseInLocation(time.DateOnly, end, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("parsing end date: %w", err)
		}
		e = t
	}
	return NewDateRange(s, e)
}
