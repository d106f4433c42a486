package models

import (
	"errors"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format used by every dated record.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format for itinerary events.
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("invalid date: expected YYYY-MM-DD")
	ErrInvalidClock = errors.New("invalid time: expected HH:MM")
)

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseClock parses HH:MM, also accepting the HH:MM:SS form some stores return.
// An empty clock is midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	layout := ClockLayout
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// NormalizeClock rewrites a parseable clock in zero-padded form ("9:00"
// becomes "09:00") so stores can order it as text. Seconds are kept only
// when non-zero. Unparseable input is returned unchanged.
func NormalizeClock(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	offset, err := ParseClock(trimmed)
	if err != nil {
		return s
	}
	t := time.Time{}.Add(offset)
	if t.Second() != 0 {
		return t.Format("15:04:05")
	}
	return t.Format(ClockLayout)
}

// Moment combines a date and an optional clock into one instant (UTC).
// A missing clock defaults to midnight.
func Moment(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(offset), nil
}
