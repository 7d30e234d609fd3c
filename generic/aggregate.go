package generic

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown is how long each label applied during an activity.
type Breakdown struct {
	Working []time.Duration // indexed by rate window
	Resting time.Duration
}

// NewBreakdown returns an empty breakdown over n rate windows.
func NewBreakdown(n int) Breakdown {
	return Breakdown{Working: make([]time.Duration, n)}
}

// Add accounts for one segment. Finished segments never occur; they are ignored.
func (b *Breakdown) Add(s Segment) error {
	switch s.Label.Kind {
	case LabelWorking:
		if s.Label.Window < 0 || s.Label.Window >= len(b.Working) {
			return fmt.Errorf("segment %s refers to unknown window %d", s.Period, s.Label.Window)
		}
		b.Working[s.Label.Window] += s.Duration()
	case LabelResting:
		b.Resting += s.Duration()
	}
	return nil
}

// Tally drains the timeline into a Breakdown in constant memory.
func Tally(tl *ActivityTimeline) (Breakdown, error) {
	b := NewBreakdown(tl.WindowCount())
	if err := tl.EachSegment(b.Add); err != nil {
		return Breakdown{}, err
	}
	return b, nil
}

// Total is the full activity duration, rest included.
func (b Breakdown) Total() time.Duration {
	total := b.Resting
	for _, d := range b.Working {
		total += d
	}
	return total
}

// Minutes returns the whole minutes spent in window i.
func (b Breakdown) Minutes(i int) Amount {
	return NewAmountFromInt(int64(b.Working[i]/time.Minute), UnitMinutes)
}

// Owed multiplies each window's whole minutes by its per-minute rate and sums.
// Resting contributes nothing. Nothing is rounded.
func (b Breakdown) Owed(rates []decimal.Decimal) (Amount, error) {
	if len(rates) != len(b.Working) {
		return Amount{}, fmt.Errorf("%w: %d rates for %d windows", ErrRateCount, len(rates), len(b.Working))
	}
	owed := Amount{Value: decimal.Zero, Unit: UnitCredits}
	for i, rate := range rates {
		owed = owed.Add(b.Minutes(i).Mul(rate, UnitCredits))
	}
	return owed, nil
}
