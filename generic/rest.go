package generic

import "time"

const (
	// WorkDuration is how long the activity runs before a mandatory rest.
	WorkDuration = 8 * time.Hour
	// RestDuration is the length of each mandatory rest.
	RestDuration = 1 * time.Hour
)

// RestCycle produces an infinite sequence of rest periods anchored at the
// activity start: work, rest, work, rest... It never looks at rate windows.
type RestCycle struct {
	next time.Time // start of the next work stretch
	work time.Duration
	rest time.Duration
}

// NewRestCycle anchors the standard 8h work / 1h rest cycle at anchor.
func NewRestCycle(anchor time.Time) *RestCycle {
	return NewRestCycleWithDurations(anchor, WorkDuration, RestDuration)
}

// NewRestCycleWithDurations anchors a cycle with custom durations.
func NewRestCycleWithDurations(anchor time.Time, work, rest time.Duration) *RestCycle {
	return &RestCycle{next: Naive(anchor), work: work, rest: rest}
}

// Peek returns the upcoming rest period without consuming it.
func (rc *RestCycle) Peek() Period {
	workEnd := rc.next.Add(rc.work)
	return Period{Start: workEnd, End: workEnd.Add(rc.rest)}
}

// Next returns the upcoming rest period and advances past it.
func (rc *RestCycle) Next() Period {
	p := rc.Peek()
	rc.next = p.End
	return p
}
