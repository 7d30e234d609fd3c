/*
timeline.go - The activity timeline merge state machine

PURPOSE:
  Merges the rate-window track (RateWindowTimeline) and the work/rest cycle
  (RestCycle) into one finite sequence of labeled instants bounded by the
  activity span.

STATES:
  Working(i)  rate window i applies
  Resting     mandatory rest, nothing is owed
  Finished    terminal, emitted once at the activity end

PRECEDENCE:
  1. The activity end always wins: once the next instant reaches it,
     (end, Finished) is emitted and the stream is over.
  2. A rest start wins ties with a rate transition.
  3. Rate transitions during a rest are absorbed. They only show up as the
     label resumed when the rest ends.

ITERATION:
  Scanner style, like bufio.Scanner:

    for tl.Next() {
        li := tl.Instant()
    }
    if err := tl.Err(); err != nil { ... }

  Both sub-streams are looked at one element ahead, never more. A multi-year
  span streams in constant memory.
*/
package generic

import "time"

// pendingResume is recorded when a rest starts: when it ends, and which label
// applies afterwards unless a transition is absorbed.
type pendingResume struct {
	end   time.Time
	label Label
}

// ActivityTimeline produces the labeled instants of one activity.
type ActivityTimeline struct {
	span    Period
	windows int
	rates   *RateWindowTimeline
	rests   *RestCycle

	cur     LabeledInstant // next element to emit
	resume  *pendingResume
	emitted LabeledInstant
	done    bool
	err     error
}

// NewActivityTimeline prepares the timeline. It fails if the activity start is
// not covered by exactly one rate window.
func NewActivityTimeline(aw ActivityWindow) (*ActivityTimeline, error) {
	span := aw.Span()
	rates, err := NewRateWindowTimeline(span.Start, aw.Windows)
	if err != nil {
		return nil, err
	}
	first, err := rates.Next()
	if err != nil {
		return nil, err
	}
	return &ActivityTimeline{
		span:    span,
		windows: len(aw.Windows),
		rates:   rates,
		rests:   NewRestCycle(span.Start),
		cur:     LabeledInstant{At: first.At, Label: Working(first.Window)},
	}, nil
}

// Span is the normalized activity period.
func (tl *ActivityTimeline) Span() Period { return tl.span }

// WindowCount is the number of rate windows labels can refer to.
func (tl *ActivityTimeline) WindowCount() int { return tl.windows }

// Next advances to the next labeled instant. It returns false once Finished has
// been emitted or an error occurred.
func (tl *ActivityTimeline) Next() bool {
	if tl.done || tl.err != nil {
		return false
	}

	ret := tl.cur
	if !ret.At.Before(tl.span.End) {
		tl.emitted = LabeledInstant{At: tl.span.End, Label: Finished()}
		tl.done = true
		return true
	}

	// ret is valid even if the successor can't be computed; the error ends the
	// stream on the following call.
	tl.emitted = ret
	tl.err = tl.advance(ret)
	return true
}

// Instant returns the element produced by the last successful Next.
func (tl *ActivityTimeline) Instant() LabeledInstant { return tl.emitted }

// Err returns the first error met while generating the timeline.
func (tl *ActivityTimeline) Err() error { return tl.err }

func (tl *ActivityTimeline) advance(ret LabeledInstant) error {
	if tl.resume != nil {
		return tl.endRest()
	}

	wt, err := tl.rates.Peek()
	if err != nil {
		return err
	}
	rest := tl.rests.Peek()

	if wt.At.Before(rest.Start) {
		if _, err := tl.rates.Next(); err != nil {
			return err
		}
		tl.cur = LabeledInstant{At: wt.At, Label: Working(wt.Window)}
		return nil
	}

	tl.rests.Next()
	tl.cur = LabeledInstant{At: rest.Start, Label: Resting()}
	tl.resume = &pendingResume{end: rest.End, label: ret.Label}
	return nil
}

// endRest schedules the end of the current rest, absorbing every transition
// that happens before or exactly at it.
func (tl *ActivityTimeline) endRest() error {
	label := tl.resume.label
	for {
		wt, err := tl.rates.Peek()
		if err != nil {
			return err
		}
		if wt.At.After(tl.resume.end) {
			break
		}
		if _, err := tl.rates.Next(); err != nil {
			return err
		}
		label = Working(wt.Window)
	}
	tl.cur = LabeledInstant{At: tl.resume.end, Label: label}
	tl.resume = nil
	return nil
}

// =============================================================================
// CONSUMERS
// =============================================================================

// EachSegment walks the timeline as consecutive [start, end) segments. It stops
// at the first error returned by fn.
func (tl *ActivityTimeline) EachSegment(fn func(Segment) error) error {
	var prev LabeledInstant
	started := false
	for tl.Next() {
		li := tl.Instant()
		if started {
			seg := Segment{Period: Period{Start: prev.At, End: li.At}, Label: prev.Label}
			if err := fn(seg); err != nil {
				return err
			}
		}
		prev, started = li, true
	}
	return tl.Err()
}

// Collect drains the timeline into a slice. Only for spans known to be short.
func (tl *ActivityTimeline) Collect() ([]LabeledInstant, error) {
	var out []LabeledInstant
	for tl.Next() {
		out = append(out, tl.Instant())
	}
	return out, tl.Err()
}

// Segments drains the timeline into segments. Only for spans known to be short.
func (tl *ActivityTimeline) Segments() ([]Segment, error) {
	var out []Segment
	err := tl.EachSegment(func(s Segment) error {
		out = append(out, s)
		return nil
	})
	return out, err
}
