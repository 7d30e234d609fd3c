package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/warp/shift-rates/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// Window indexes of the reference sheet.
const (
	stdDay = iota
	stdNight
	extDay
	extNight
)

func at(s string) time.Time {
	t, err := generic.ParseNaive(s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(h, m int) generic.ClockTime { return generic.NewClockTime(h, m, 0) }

// referenceWindows is day 07:00-23:00 and night 23:00-07:00, standard on
// weekdays, extra on the weekend.
func referenceWindows() []generic.RateWindow {
	return []generic.RateWindow{
		stdDay:   {Start: clock(7, 0), End: clock(23, 0), Days: generic.Weekdays},
		stdNight: {Start: clock(23, 0), End: clock(7, 0), Days: generic.Weekdays},
		extDay:   {Start: clock(7, 0), End: clock(23, 0), Days: generic.Weekend},
		extNight: {Start: clock(23, 0), End: clock(7, 0), Days: generic.Weekend},
	}
}

func working(s string, window int) generic.LabeledInstant {
	return generic.LabeledInstant{At: at(s), Label: generic.Working(window)}
}

func resting(s string) generic.LabeledInstant {
	return generic.LabeledInstant{At: at(s), Label: generic.Resting()}
}

func finished(s string) generic.LabeledInstant {
	return generic.LabeledInstant{At: at(s), Label: generic.Finished()}
}

func newTimeline(t *testing.T, start, end string, windows []generic.RateWindow) *generic.ActivityTimeline {
	t.Helper()
	tl, err := generic.NewActivityTimeline(generic.ActivityWindow{Start: at(start), End: at(end), Windows: windows})
	require.NoError(t, err)
	return tl
}

func collect(t *testing.T, start, end string, windows []generic.RateWindow) []generic.LabeledInstant {
	t.Helper()
	out, err := newTimeline(t, start, end, windows).Collect()
	require.NoError(t, err)
	return out
}
