package generic

import "time"

// =============================================================================
// PERIOD - Absolute half-open interval of naive time
// =============================================================================

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t is within [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Duration returns End - Start.
func (p Period) Duration() time.Duration { return p.End.Sub(p.Start) }

// IsEmpty reports whether the period covers no time at all.
func (p Period) IsEmpty() bool { return !p.End.After(p.Start) }

// Shift moves both bounds by whole calendar days.
func (p Period) Shift(days int) Period {
	return Period{Start: p.Start.AddDate(0, 0, days), End: p.End.AddDate(0, 0, days)}
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + FormatNaive(p.Start) + ", " + FormatNaive(p.End) + ")"
}

// =============================================================================
// ACTIVITY WINDOW - Input of one timeline computation
// =============================================================================

// ActivityWindow is a span of activity together with the rate windows that
// classify it. The windows must partition the week (see ValidatePartition).
//
// End before Start is treated as an empty span.
type ActivityWindow struct {
	Start   time.Time
	End     time.Time
	Windows []RateWindow
}

// Span returns the normalized activity period.
func (aw ActivityWindow) Span() Period {
	start, end := Naive(aw.Start), Naive(aw.End)
	if end.Before(start) {
		end = start
	}
	return Period{Start: start, End: end}
}
