// Package robot implements robot shift pricing on top of the generic timeline engine.
// It names the four rate bands, binds them to weekdays and turns a Schedule into a Quote.
package robot

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-rates/generic"
)

// =============================================================================
// RATE BANDS
// =============================================================================

// Band identifies one of the four rate bands. Its value is the rate window
// index used by the engine.
type Band int

const (
	StandardDay Band = iota
	StandardNight
	ExtraDay
	ExtraNight

	bandCount = 4
)

// Bands lists every band in window-index order.
var Bands = [bandCount]Band{StandardDay, StandardNight, ExtraDay, ExtraNight}

var bandNames = [bandCount]string{"standard_day", "standard_night", "extra_day", "extra_night"}

func (b Band) String() string {
	if b < 0 || int(b) >= bandCount {
		return fmt.Sprintf("band(%d)", int(b))
	}
	return bandNames[b]
}

// Days returns the weekdays the band applies on: standard bands on weekdays,
// extra bands on the weekend.
func (b Band) Days() generic.WeekdaySet {
	switch b {
	case ExtraDay, ExtraNight:
		return generic.Weekend
	default:
		return generic.Weekdays
	}
}

// ParseBand accepts the names returned by String.
func ParseBand(s string) (Band, error) {
	for i, name := range bandNames {
		if name == s {
			return Band(i), nil
		}
	}
	return 0, fmt.Errorf("unknown band %q", s)
}

// BandOf maps an engine label back to its band.
func BandOf(l generic.Label) (Band, bool) {
	if !l.IsWorking() || l.Window < 0 || l.Window >= bandCount {
		return 0, false
	}
	return Band(l.Window), true
}

// =============================================================================
// SCHEDULE
// =============================================================================

// BandRate is the clock range of a band and what it pays per minute.
type BandRate struct {
	Start generic.ClockTime
	End   generic.ClockTime
	Value decimal.Decimal
}

// Schedule is a shift plus the rate of every band.
type Schedule struct {
	Shift generic.Period
	Rates [bandCount]BandRate // indexed by Band
}

// Windows returns the engine's rate windows, indexed like Bands.
func (s Schedule) Windows() []generic.RateWindow {
	windows := make([]generic.RateWindow, bandCount)
	for _, b := range Bands {
		r := s.Rates[b]
		windows[b] = generic.RateWindow{Start: r.Start, End: r.End, Days: b.Days()}
	}
	return windows
}

// RateValues returns the per-minute rates, indexed like Bands.
func (s Schedule) RateValues() []decimal.Decimal {
	values := make([]decimal.Decimal, bandCount)
	for _, b := range Bands {
		values[b] = s.Rates[b].Value
	}
	return values
}

// BandNames returns the band names, indexed like Bands.
func BandNames() []string {
	return append([]string(nil), bandNames[:]...)
}

// ActivityWindow returns the engine input for this schedule.
func (s Schedule) ActivityWindow() generic.ActivityWindow {
	return generic.ActivityWindow{Start: s.Shift.Start, End: s.Shift.End, Windows: s.Windows()}
}

// MaxShiftYears bounds a shift so that per-band duration totals fit a time.Duration.
const MaxShiftYears = 250

// ErrShiftTooLong is returned by Validate for shifts over MaxShiftYears.
var ErrShiftTooLong = errors.New("shift too long")

// Validate checks the shift length, that the bands partition the week and
// that no rate is negative.
func (s Schedule) Validate() error {
	if s.Shift.End.After(s.Shift.Start.AddDate(MaxShiftYears, 0, 0)) {
		return fmt.Errorf("%w: %s exceeds %d years", ErrShiftTooLong, s.Shift, MaxShiftYears)
	}
	for _, b := range Bands {
		if s.Rates[b].Value.IsNegative() {
			return fmt.Errorf("%s: negative rate %s", b, s.Rates[b].Value)
		}
	}
	return generic.ValidatePartition(s.Windows())
}
