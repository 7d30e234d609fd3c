package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-rates/generic"
)

func TestRateWindow_Contains(t *testing.T) {
	w := referenceWindows()

	tests := []struct {
		name   string
		at     string
		window int
	}{
		{"weekday day", "2021-09-06T12:00:00", stdDay},
		{"weekday day start is inclusive", "2021-09-06T07:00:00", stdDay},
		{"weekday night before midnight", "2021-09-06T23:30:00", stdNight},
		{"weekday night after midnight", "2021-09-07T03:00:00", stdNight},
		{"friday night before midnight stays standard", "2021-09-10T23:30:00", stdNight},
		{"saturday just after midnight is weekend", "2021-09-11T00:30:00", extNight},
		{"sunday day", "2021-09-12T12:00:00", extDay},
		{"monday just after midnight is weekday", "2021-09-13T00:00:00", stdNight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range w {
				assert.Equal(t, i == tt.window, w[i].Contains(at(tt.at)), "window %d", i)
			}
		})
	}
}

func TestRateWindow_NextOccurrence(t *testing.T) {
	w := referenceWindows()

	// Inside: the remainder of the occurrence
	occ, ok := w[stdDay].NextOccurrence(at("2021-09-06T12:00:00"))
	require.True(t, ok)
	assert.Equal(t, generic.Period{Start: at("2021-09-06T12:00:00"), End: at("2021-09-06T23:00:00")}, occ)

	// Wrapping window after its start runs to tomorrow's end
	occ, ok = w[stdNight].NextOccurrence(at("2021-09-06T23:30:00"))
	require.True(t, ok)
	assert.Equal(t, at("2021-09-07T07:00:00"), occ.End)

	// Outside the clock range: ask another window
	_, ok = w[stdDay].NextOccurrence(at("2021-09-06T03:00:00"))
	assert.False(t, ok)

	// Saturday day for a weekday window moves to Monday
	occ, ok = w[stdDay].NextOccurrence(at("2021-09-11T12:00:00"))
	require.True(t, ok)
	assert.Equal(t, generic.Period{Start: at("2021-09-13T12:00:00"), End: at("2021-09-13T23:00:00")}, occ)
}

func TestRateWindow_NextStart(t *testing.T) {
	w := referenceWindows()

	start, ok := w[stdDay].NextStart(at("2021-09-06T12:00:00"))
	require.True(t, ok)
	assert.Equal(t, at("2021-09-07T07:00:00"), start)

	start, ok = w[extNight].NextStart(at("2021-09-06T12:00:00"))
	require.True(t, ok)
	assert.Equal(t, at("2021-09-11T23:00:00"), start, "first weekend 23:00 is Saturday")

	start, ok = w[stdNight].NextStart(at("2021-09-10T22:00:00"))
	require.True(t, ok)
	assert.Equal(t, at("2021-09-10T23:00:00"), start, "Friday 23:00 is still a weekday start")
}

func TestRateWindow_Validate(t *testing.T) {
	assert.NoError(t, referenceWindows()[stdDay].Validate())

	degenerate := generic.RateWindow{Start: clock(7, 0), End: clock(7, 0), Days: generic.EveryDay}
	assert.ErrorIs(t, degenerate.Validate(), generic.ErrDegenerateWindow)

	noDays := generic.RateWindow{Start: clock(7, 0), End: clock(8, 0)}
	assert.ErrorIs(t, noDays.Validate(), generic.ErrNoWeekdays)
}

func TestRateWindow_String(t *testing.T) {
	assert.Equal(t, "23:00:00-07:00:00 weekend", referenceWindows()[extNight].String())
	assert.True(t, referenceWindows()[extNight].Wraps())
	assert.False(t, referenceWindows()[extDay].Wraps())
}
