package generic

import (
	"fmt"
	"time"
)

// RateWindow is a recurring time-of-day interval restricted to a set of weekdays.
// Start > End means the window wraps past midnight (e.g. 23:00-07:00).
//
// Weekday membership is always checked against the instant itself: 00:30 on a
// Saturday belongs to a weekend window even if the clock range began on Friday.
type RateWindow struct {
	Start ClockTime
	End   ClockTime
	Days  WeekdaySet
}

// Wraps reports whether the window crosses midnight.
func (w RateWindow) Wraps() bool { return w.End.Before(w.Start) }

// Validate checks the window on its own. Partition checks live in ValidatePartition.
func (w RateWindow) Validate() error {
	if w.Start.Equal(w.End) {
		return ErrDegenerateWindow
	}
	if w.Days.Empty() {
		return ErrNoWeekdays
	}
	return nil
}

// coversClock reports whether an offset since midnight is inside the clock range,
// ignoring weekdays.
func (w RateWindow) coversClock(off time.Duration) bool {
	start, end := w.Start.Offset(), w.End.Offset()
	if w.Wraps() {
		return off >= start || off < end
	}
	return off >= start && off < end
}

// Contains returns true if t falls on a valid weekday and inside the clock range.
func (w RateWindow) Contains(t time.Time) bool {
	return w.Days.Has(t.Weekday()) && w.coversClock(clockOffset(t))
}

// NextOccurrence returns the remainder of the occurrence that t is in, judged by
// clock time only. If t is outside the clock range it returns false: another
// window must be asked.
//
// When the occurrence starts on a weekday the window doesn't apply to, it is
// moved forward one day at a time until it does, keeping its clock shape.
func (w RateWindow) NextOccurrence(t time.Time) (Period, bool) {
	t = Naive(t)
	off := clockOffset(t)
	if !w.coversClock(off) {
		return Period{}, false
	}

	day := midnight(t)
	end := day.Add(w.End.Offset())
	if w.Wraps() && off >= w.Start.Offset() {
		end = day.AddDate(0, 0, 1).Add(w.End.Offset())
	}

	occ := Period{Start: t, End: end}
	for i := 0; i < 7 && !w.Days.Has(occ.Start.Weekday()); i++ {
		occ = occ.Shift(1)
	}
	if !w.Days.Has(occ.Start.Weekday()) {
		return Period{}, false
	}
	return occ, true
}

// NextStart returns the first occurrence start strictly after t on a valid weekday.
func (w RateWindow) NextStart(t time.Time) (time.Time, bool) {
	occ, ok := w.NextOccurrence(w.Start.NextAfter(Naive(t)))
	if !ok {
		return time.Time{}, false
	}
	return occ.Start, true
}

func (w RateWindow) String() string {
	return fmt.Sprintf("%s-%s %s", w.Start, w.End, w.Days)
}
