package robot

import (
	"fmt"
	"time"

	"github.com/warp/shift-rates/generic"
)

// Quote is the priced outcome of a Schedule.
type Quote struct {
	Shift     generic.Period
	Breakdown generic.Breakdown
	Owed      generic.Amount
	Segments  []generic.Segment // nil for Total
}

// Value is the owed amount as a whole number of currency units.
func (q *Quote) Value() (int64, error) { return q.Owed.Int64() }

// Minutes returns the whole minutes worked in band b.
func (q *Quote) Minutes(b Band) int64 {
	return int64(q.Breakdown.Working[b] / time.Minute)
}

// RestMinutes returns the whole minutes spent resting.
func (q *Quote) RestMinutes() int64 {
	return int64(q.Breakdown.Resting / time.Minute)
}

// Total prices the schedule without keeping segments. Memory use does not
// grow with the shift length.
func Total(s Schedule) (*Quote, error) {
	return run(s, false)
}

// Calculate prices the schedule and keeps every segment of the timeline.
func Calculate(s Schedule) (*Quote, error) {
	return run(s, true)
}

func run(s Schedule, keepSegments bool) (*Quote, error) {
	tl, err := generic.NewActivityTimeline(s.ActivityWindow())
	if err != nil {
		return nil, fmt.Errorf("build timeline: %w", err)
	}

	q := &Quote{Shift: tl.Span(), Breakdown: generic.NewBreakdown(tl.WindowCount())}
	err = tl.EachSegment(func(seg generic.Segment) error {
		if keepSegments {
			q.Segments = append(q.Segments, seg)
		}
		return q.Breakdown.Add(seg)
	})
	if err != nil {
		return nil, fmt.Errorf("walk timeline: %w", err)
	}

	q.Owed, err = q.Breakdown.Owed(s.RateValues())
	if err != nil {
		return nil, err
	}
	return q, nil
}
