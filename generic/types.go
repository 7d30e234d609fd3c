/*
Package generic provides the core timeline engine.

PURPOSE:
  This package turns an activity span, a set of weekday-aware rate windows and
  a fixed work/rest cycle into one ordered, gapless sequence of labeled
  instants. Everything a caller needs to price the activity (per-window
  durations, rest time) is derived from that sequence.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (minutes, credits)
  - Label: Which rate window applies, or resting, or finished
  - LabeledInstant: The instant at which a label starts applying
  - Segment: One closed-off [start, end) interval with its label

DESIGN PRINCIPLES:
  1. Laziness: every sequence is a pull-based iterator with O(1) state
  2. Naivety: all instants are wall-clock values in UTC, never converted
  3. Precision: money uses decimal.Decimal, never float64
  4. Statelessness: each computation starts from explicit inputs

USAGE:
  tl, err := generic.NewActivityTimeline(generic.ActivityWindow{
      Start:   start,
      End:     end,
      Windows: windows,
  })
  for tl.Next() {
      li := tl.Instant()
      ...
  }
  if err := tl.Err(); err != nil { ... }

SEE ALSO:
  - window.go: RateWindow queries
  - ratetimeline.go: Which window applies when
  - timeline.go: The merge state machine
  - aggregate.go: Durations and owed amounts
*/
package generic

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitCredits Unit = "credits" // currency units owed
)

func NewAmountFromInt(value int64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(value), Unit: unit}
}

func (a Amount) Add(b Amount) Amount { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }

// Mul scales the amount and relabels it: minutes times a per-minute rate are credits.
func (a Amount) Mul(s decimal.Decimal, unit Unit) Amount {
	return Amount{Value: a.Value.Mul(s), Unit: unit}
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// Int64 reports the amount as an integer, failing if it is fractional or out of range.
func (a Amount) Int64() (int64, error) {
	if !a.Value.IsInteger() {
		return 0, fmt.Errorf("%w: %s %s is not integral", ErrAmountOverflow, a.Value, a.Unit)
	}
	if a.Value.GreaterThan(maxInt64) || a.Value.LessThan(minInt64) {
		return 0, fmt.Errorf("%w: %s %s", ErrAmountOverflow, a.Value, a.Unit)
	}
	return a.Value.IntPart(), nil
}

func (a Amount) String() string { return a.Value.String() + " " + string(a.Unit) }

// =============================================================================
// LABEL - What applies during an interval
// =============================================================================

type LabelKind uint8

const (
	LabelWorking LabelKind = iota
	LabelResting
	LabelFinished
)

var labelKindNames = [...]string{LabelWorking: "working", LabelResting: "resting", LabelFinished: "finished"}

func (k LabelKind) String() string {
	if int(k) < len(labelKindNames) {
		return labelKindNames[k]
	}
	return fmt.Sprintf("label_kind(%d)", k)
}

// Label is a tagged variant: a rate window index (Working), Resting or Finished.
// Window is only meaningful for LabelWorking.
type Label struct {
	Kind   LabelKind
	Window int
}

func Working(window int) Label { return Label{Kind: LabelWorking, Window: window} }
func Resting() Label           { return Label{Kind: LabelResting} }
func Finished() Label          { return Label{Kind: LabelFinished} }

func (l Label) IsWorking() bool  { return l.Kind == LabelWorking }
func (l Label) IsResting() bool  { return l.Kind == LabelResting }
func (l Label) IsFinished() bool { return l.Kind == LabelFinished }

func (l Label) String() string {
	switch l.Kind {
	case LabelWorking:
		return fmt.Sprintf("working(%d)", l.Window)
	case LabelResting:
		return "resting"
	case LabelFinished:
		return "finished"
	default:
		return fmt.Sprintf("label(%d)", l.Kind)
	}
}

// =============================================================================
// TIMELINE ELEMENTS
// =============================================================================

// LabeledInstant marks the instant at which Label starts applying. The previous
// label stops applying at the same instant.
type LabeledInstant struct {
	At    time.Time
	Label Label
}

func (li LabeledInstant) String() string {
	return FormatNaive(li.At) + " " + li.Label.String()
}

// WindowTransition is an element of the rate-window track: from At onwards,
// Window applies.
type WindowTransition struct {
	At     time.Time
	Window int
}

// Segment is one [Start, End) interval of a finished timeline.
type Segment struct {
	Period
	Label Label
}
