/*
errors.go - Centralized error types for the timeline engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer packages (factory, api) wrap these errors with additional context.

ERROR CATEGORIES:
  1. Partition errors - Rate windows that do not cover the week exactly once.
     Fatal: the input is wrong, nothing mid-stream can recover.
  2. Window errors - A single rate window that cannot be valid on its own
  3. Aggregation errors - Rate/label mismatches, totals out of range
  4. Store errors - Calculation history lookups

USAGE:
    if errors.Is(err, generic.ErrPartition) {
        // reject the configuration
    }

SEE ALSO:
  - ratetimeline.go: Raises partition errors while classifying instants
  - partition.go: Up-front validation
*/
package generic

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrPartition is the root of every "rate windows do not partition the week" error.
	ErrPartition = errors.New("rate windows do not partition the week")

	// ErrUncoveredInstant is returned when no rate window contains an instant.
	ErrUncoveredInstant = fmt.Errorf("%w: instant not covered by any window", ErrPartition)

	// ErrOverlappingWindows is returned when more than one rate window contains an instant.
	// Identical next-occurrence starts end up here too; there is no tie-break.
	ErrOverlappingWindows = fmt.Errorf("%w: instant covered by more than one window", ErrPartition)

	// ErrNoWindows is returned when a computation is given no rate windows at all.
	ErrNoWindows = fmt.Errorf("%w: no rate windows", ErrPartition)

	// ErrDegenerateWindow is returned for a window whose start equals its end.
	ErrDegenerateWindow = errors.New("rate window start equals end")

	// ErrNoWeekdays is returned for a window valid on no weekday.
	ErrNoWeekdays = errors.New("rate window has no weekdays")

	// ErrRateCount is returned when the number of rates does not match the number of windows.
	ErrRateCount = errors.New("rate count does not match window count")

	// ErrAmountOverflow is returned when an amount cannot be reported as an int64.
	ErrAmountOverflow = errors.New("amount out of range")

	// ErrCalculationNotFound is returned when a stored calculation doesn't exist.
	ErrCalculationNotFound = errors.New("calculation not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PartitionError reports the instant that could not be classified.
type PartitionError struct {
	At      time.Time
	Windows []int // indexes of the windows involved, if any
	Err     error
}

func (e *PartitionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	sb.WriteString(" at ")
	sb.WriteString(FormatNaive(e.At))
	sb.WriteString(" (")
	sb.WriteString(e.At.Weekday().String())
	sb.WriteString(")")
	if len(e.Windows) > 0 {
		fmt.Fprintf(&sb, " windows %v", e.Windows)
	}
	return sb.String()
}

func (e *PartitionError) Unwrap() error { return e.Err }

// WindowError identifies which window of a list failed validation.
type WindowError struct {
	Index  int
	Window RateWindow
	Err    error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("rate window %d (%s): %v", e.Index, e.Window, e.Err)
}

func (e *WindowError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrPartition) ||
		errors.Is(err, ErrDegenerateWindow) ||
		errors.Is(err, ErrNoWeekdays) ||
		errors.Is(err, ErrRateCount) ||
		errors.Is(err, ErrAmountOverflow)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCalculationNotFound)
}
