package generic

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// NAIVE INSTANTS - Wall-clock values, no timezone conversion ever happens
// =============================================================================

// NaiveLayout is the date-time layout used by shift documents ("2021-09-05T22:00:00").
const NaiveLayout = "2006-01-02T15:04:05"

// Naive returns t's wall-clock reading re-anchored in UTC. The engine works in a
// single naive calendar, so every instant it sees goes through here first.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseNaive parses a date-time without offset. The result has whole seconds,
// so FormatNaive gives back the same instant.
func ParseNaive(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{NaiveLayout, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		if t.Nanosecond() != 0 {
			return time.Time{}, fmt.Errorf("invalid date-time %q: fractional seconds are not supported", s)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q (use %s)", s, NaiveLayout)
}

// FormatNaive is the inverse of ParseNaive.
func FormatNaive(t time.Time) string { return Naive(t).Format(NaiveLayout) }

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextMidnight(t time.Time) time.Time { return midnight(t).AddDate(0, 0, 1) }

// clockOffset is the time elapsed since t's midnight.
func clockOffset(t time.Time) time.Duration { return t.Sub(midnight(t)) }

// =============================================================================
// CLOCK TIME - A time of day without a date
// =============================================================================

// ClockTime represents a time of day, e.g. "07:00:00".
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// Midnight is 00:00:00.
var Midnight = ClockTime{}

// NewClockTime builds a ClockTime. It does not range-check; use ParseClockTime for input.
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute, Second: second}
}

// ParseClockTime parses "15:04:05" or "15:04".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time of day %q (use HH:MM:SS)", s)
}

// ClockOf returns the time of day of t, truncated to the second.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Offset is the duration since midnight.
func (c ClockTime) Offset() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute + time.Duration(c.Second)*time.Second
}

func (c ClockTime) Before(other ClockTime) bool { return c.Offset() < other.Offset() }
func (c ClockTime) Equal(other ClockTime) bool  { return c.Offset() == other.Offset() }

// OnDate returns the instant at this clock time on t's calendar day.
func (c ClockTime) OnDate(t time.Time) time.Time { return midnight(t).Add(c.Offset()) }

// NextAfter returns the first instant strictly after t whose time of day is c.
func (c ClockTime) NextAfter(t time.Time) time.Time {
	at := c.OnDate(t)
	if !at.After(t) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c ClockTime) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// =============================================================================
// WEEKDAY SET
// =============================================================================

// WeekdaySet is a set of weekdays, one bit per time.Weekday.
type WeekdaySet uint8

const (
	Weekdays WeekdaySet = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday
	Weekend  WeekdaySet = 1<<time.Saturday | 1<<time.Sunday
	EveryDay            = Weekdays | Weekend
)

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << d
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<d) != 0 }
func (s WeekdaySet) Empty() bool             { return s&EveryDay == 0 }

// Days lists the members starting from Sunday.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	switch s & EveryDay {
	case EveryDay:
		return "every day"
	case Weekdays:
		return "weekdays"
	case Weekend:
		return "weekend"
	}
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}
