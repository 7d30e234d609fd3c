package generic

import (
	"fmt"
	"time"
)

// transitionHorizon bounds the search for the next window change. A valid
// partition changes window at least once a day.
const transitionHorizon = 8 * 24 * time.Hour

// RateWindowTimeline is the infinite "which window applies now" track.
//
// Next emits the current transition and moves on. The successor is only
// computed when Peek or Next asks for it, so the timeline never holds more than
// one pending element.
type RateWindowTimeline struct {
	windows []RateWindow
	cur     WindowTransition
	stale   bool // cur was emitted, successor not computed yet
}

// NewRateWindowTimeline classifies start and positions the timeline on it.
// It fails with a partition error if start is not covered by exactly one window.
func NewRateWindowTimeline(start time.Time, windows []RateWindow) (*RateWindowTimeline, error) {
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}
	start = Naive(start)
	idx, err := classify(windows, start)
	if err != nil {
		return nil, err
	}
	return &RateWindowTimeline{
		windows: append([]RateWindow(nil), windows...),
		cur:     WindowTransition{At: start, Window: idx},
	}, nil
}

// Peek returns what the next call to Next will return, without consuming it.
func (rt *RateWindowTimeline) Peek() (WindowTransition, error) {
	if rt.stale {
		next, err := rt.transitionAfter(rt.cur)
		if err != nil {
			return WindowTransition{}, err
		}
		rt.cur, rt.stale = next, false
	}
	return rt.cur, nil
}

// Next returns the current transition and advances.
func (rt *RateWindowTimeline) Next() (WindowTransition, error) {
	wt, err := rt.Peek()
	if err != nil {
		return WindowTransition{}, err
	}
	rt.stale = true
	return wt, nil
}

// transitionAfter finds the first instant after from.At classified to a window
// other than from.Window.
//
// Candidates are window occurrence starts, window ends and midnights: between
// two consecutive candidates nothing can change. Midnight matters on its own
// because weekday sets flip there (Sunday 23:00 extra night becomes Monday
// 00:00 standard night without any clock boundary).
func (rt *RateWindowTimeline) transitionAfter(from WindowTransition) (WindowTransition, error) {
	at, limit := from.At, from.At.Add(transitionHorizon)
	for at.Before(limit) {
		candidate := nextMidnight(at)
		for _, w := range rt.windows {
			if s, ok := w.NextStart(at); ok && s.Before(candidate) {
				candidate = s
			}
			if e := w.End.NextAfter(at); e.Before(candidate) {
				candidate = e
			}
		}

		idx, err := classify(rt.windows, candidate)
		if err != nil {
			return WindowTransition{}, err
		}
		if idx != from.Window {
			return WindowTransition{At: candidate, Window: idx}, nil
		}
		at = candidate
	}
	return WindowTransition{}, &PartitionError{
		At:      from.At,
		Windows: []int{from.Window},
		Err:     fmt.Errorf("%w: window never ends", ErrPartition),
	}
}

// classify returns the only window containing t.
func classify(windows []RateWindow, t time.Time) (int, error) {
	found := -1
	for i, w := range windows {
		if !w.Contains(t) {
			continue
		}
		if found >= 0 {
			return -1, &PartitionError{At: t, Windows: []int{found, i}, Err: ErrOverlappingWindows}
		}
		found = i
	}
	if found < 0 {
		return -1, &PartitionError{At: t, Err: ErrUncoveredInstant}
	}
	return found, nil
}
