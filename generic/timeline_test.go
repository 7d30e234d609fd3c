package generic_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-rates/generic"
)

// =============================================================================
// SEQUENCES
// =============================================================================

func TestActivityTimeline_SundayNightIntoMonday(t *testing.T) {
	// GIVEN: Sunday 22:00 to Monday 12:59
	// WHEN: The timeline is collected
	got := collect(t, "2021-09-05T22:00:00", "2021-09-06T12:59:00", referenceWindows())

	// THEN: Weekend rates until midnight, the first rest 8h in, then weekday day rate
	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-05T22:00:00", extDay),
		working("2021-09-05T23:00:00", extNight),
		working("2021-09-06T00:00:00", stdNight),
		resting("2021-09-06T06:00:00"),
		working("2021-09-06T07:00:00", stdDay),
		finished("2021-09-06T12:59:00"),
	}, got)
}

func TestActivityTimeline_FridayEarlyStart(t *testing.T) {
	got := collect(t, "2021-09-10T00:01:00", "2021-09-12T00:30:00", referenceWindows())

	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-10T00:01:00", stdNight),
		working("2021-09-10T07:00:00", stdDay),
		resting("2021-09-10T08:01:00"),
		working("2021-09-10T09:01:00", stdDay),
		resting("2021-09-10T17:01:00"),
		working("2021-09-10T18:01:00", stdDay),
		working("2021-09-10T23:00:00", stdNight),
		working("2021-09-11T00:00:00", extNight),
		resting("2021-09-11T02:01:00"),
		working("2021-09-11T03:01:00", extNight),
		working("2021-09-11T07:00:00", extDay),
		resting("2021-09-11T11:01:00"),
		working("2021-09-11T12:01:00", extDay),
		resting("2021-09-11T20:01:00"),
		working("2021-09-11T21:01:00", extDay),
		working("2021-09-11T23:00:00", extNight),
		finished("2021-09-12T00:30:00"),
	}, got)
}

func TestActivityTimeline_FridayLateStart(t *testing.T) {
	got := collect(t, "2021-09-10T23:01:00", "2021-09-11T12:55:00", referenceWindows())

	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-10T23:01:00", stdNight),
		working("2021-09-11T00:00:00", extNight),
		working("2021-09-11T07:00:00", extDay),
		resting("2021-09-11T07:01:00"),
		working("2021-09-11T08:01:00", extDay),
		finished("2021-09-11T12:55:00"),
	}, got)
}

// =============================================================================
// PRECEDENCE
// =============================================================================

func TestActivityTimeline_RestWinsTie(t *testing.T) {
	// GIVEN: A start 8h before the 07:00 day boundary
	// WHEN: The rest and the rate change coincide
	got := collect(t, "2021-09-05T23:00:00", "2021-09-06T09:00:00", referenceWindows())

	// THEN: The rest is emitted and the day rate only shows up at its end
	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-05T23:00:00", extNight),
		working("2021-09-06T00:00:00", stdNight),
		resting("2021-09-06T07:00:00"),
		working("2021-09-06T08:00:00", stdDay),
		finished("2021-09-06T09:00:00"),
	}, got)
}

func TestActivityTimeline_AbsorbsEveryTransitionDuringRest(t *testing.T) {
	// GIVEN: Two short windows entirely inside the 06:00-07:00 rest
	windows := []generic.RateWindow{
		{Start: clock(0, 0), End: clock(6, 10), Days: generic.EveryDay},
		{Start: clock(6, 10), End: clock(6, 20), Days: generic.EveryDay},
		{Start: clock(6, 20), End: clock(0, 0), Days: generic.EveryDay},
	}
	require.NoError(t, generic.ValidatePartition(windows))

	got := collect(t, "2021-09-05T22:00:00", "2021-09-06T08:00:00", windows)

	// THEN: Neither shows up; the rest resumes into the window current at its end
	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-05T22:00:00", 2),
		working("2021-09-06T00:00:00", 0),
		resting("2021-09-06T06:00:00"),
		working("2021-09-06T07:00:00", 2),
		finished("2021-09-06T08:00:00"),
	}, got)
}

func TestActivityTimeline_TransitionAtRestEndIsAbsorbed(t *testing.T) {
	// Rest 06:00-07:00 from a 22:00 start; stdDay starts exactly at 07:00 on Monday
	got := collect(t, "2021-09-05T22:00:00", "2021-09-06T07:30:00", referenceWindows())

	require.Len(t, got, 6)
	assert.Equal(t, working("2021-09-06T07:00:00", stdDay), got[4])
	assert.Equal(t, finished("2021-09-06T07:30:00"), got[5])
}

func TestActivityTimeline_EndDuringRest(t *testing.T) {
	got := collect(t, "2021-09-06T08:00:00", "2021-09-06T16:30:00", referenceWindows())

	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-06T08:00:00", stdDay),
		resting("2021-09-06T16:00:00"),
		finished("2021-09-06T16:30:00"),
	}, got)
}

func TestActivityTimeline_EndAtRestStart(t *testing.T) {
	got := collect(t, "2021-09-06T08:00:00", "2021-09-06T16:00:00", referenceWindows())

	assert.Equal(t, []generic.LabeledInstant{
		working("2021-09-06T08:00:00", stdDay),
		finished("2021-09-06T16:00:00"),
	}, got)
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestActivityTimeline_EmptySpan(t *testing.T) {
	got := collect(t, "2021-09-06T08:00:00", "2021-09-06T08:00:00", referenceWindows())
	assert.Equal(t, []generic.LabeledInstant{finished("2021-09-06T08:00:00")}, got)
}

func TestActivityTimeline_EndBeforeStartIsEmpty(t *testing.T) {
	tl := newTimeline(t, "2021-09-06T08:00:00", "2021-09-06T07:00:00", referenceWindows())
	assert.True(t, tl.Span().IsEmpty())

	got, err := tl.Collect()
	require.NoError(t, err)
	assert.Equal(t, []generic.LabeledInstant{finished("2021-09-06T08:00:00")}, got)

	b, err := generic.Tally(newTimeline(t, "2021-09-06T08:00:00", "2021-09-06T07:00:00", referenceWindows()))
	require.NoError(t, err)
	assert.Zero(t, b.Total())
}

func TestActivityTimeline_UncoveredStartFails(t *testing.T) {
	windows := referenceWindows()
	windows[stdDay].End = clock(22, 0)

	_, err := generic.NewActivityTimeline(generic.ActivityWindow{
		Start:   at("2021-09-06T22:30:00"),
		End:     at("2021-09-06T23:30:00"),
		Windows: windows,
	})

	assert.ErrorIs(t, err, generic.ErrUncoveredInstant)
}

func TestActivityTimeline_GapMidStreamEndsWithError(t *testing.T) {
	// GIVEN: A gap at 22:00-23:00 on weekdays
	windows := referenceWindows()
	windows[stdDay].End = clock(22, 0)
	tl := newTimeline(t, "2021-09-06T20:00:00", "2021-09-07T02:00:00", windows)

	// WHEN: Iterating
	var got []generic.LabeledInstant
	for tl.Next() {
		got = append(got, tl.Instant())
	}

	// THEN: The valid prefix is produced, then the stream stops with the error
	assert.Equal(t, []generic.LabeledInstant{working("2021-09-06T20:00:00", stdDay)}, got)
	assert.ErrorIs(t, tl.Err(), generic.ErrUncoveredInstant)
	assert.False(t, tl.Next(), "no element after an error")
}

func TestActivityTimeline_NaiveInputs(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*60*60)
	tl, err := generic.NewActivityTimeline(generic.ActivityWindow{
		Start:   time.Date(2021, time.September, 5, 22, 0, 0, 0, zone),
		End:     time.Date(2021, time.September, 6, 12, 59, 0, 0, zone),
		Windows: referenceWindows(),
	})
	require.NoError(t, err)

	got, err := tl.Collect()
	require.NoError(t, err)
	assert.Equal(t, collect(t, "2021-09-05T22:00:00", "2021-09-06T12:59:00", referenceWindows()), got)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestActivityTimeline_Properties(t *testing.T) {
	windows := referenceWindows()
	base := at("2021-09-06T00:00:00")

	// Starts every 37 minutes over a week, spans from 0 to ~3 days.
	for i := 0; i < 7*24*60/37; i++ {
		start := base.Add(time.Duration(i) * 37 * time.Minute)
		end := start.Add(time.Duration(i%80) * 53 * time.Minute)

		t.Run(fmt.Sprintf("%s+%s", generic.FormatNaive(start), end.Sub(start)), func(t *testing.T) {
			aw := generic.ActivityWindow{Start: start, End: end, Windows: windows}
			tl, err := generic.NewActivityTimeline(aw)
			require.NoError(t, err)
			got, err := tl.Collect()
			require.NoError(t, err)

			// Bounded: starts at start, ends with exactly one Finished at end
			require.NotEmpty(t, got)
			assert.Equal(t, start, got[0].At)
			last := got[len(got)-1]
			assert.Equal(t, generic.LabeledInstant{At: end, Label: generic.Finished()}, last)

			var total time.Duration
			for k := 0; k+1 < len(got); k++ {
				cur, next := got[k], got[k+1]

				// Strictly increasing, Finished only last
				require.True(t, cur.At.Before(next.At), "%s then %s", cur, next)
				require.False(t, cur.Label.IsFinished())

				// Working segments sit inside their window
				if cur.Label.IsWorking() {
					w := windows[cur.Label.Window]
					assert.True(t, w.Contains(cur.At), "%s", cur)
					assert.True(t, w.Contains(next.At.Add(-time.Second)), "%s until %s", cur, next)
				}

				// Rests are 1h unless cut by the end, and start 8h + 9k h in
				if cur.Label.IsResting() {
					assert.Equal(t, time.Duration(0), (cur.At.Sub(start)-generic.WorkDuration)%(9*time.Hour), "%s", cur)
					if !next.Label.IsFinished() {
						assert.Equal(t, generic.RestDuration, next.At.Sub(cur.At))
					}
				}

				// No two consecutive identical labels
				assert.NotEqual(t, cur.Label, next.Label, "%s then %s", cur, next)
				total += next.At.Sub(cur.At)
			}

			// Duration conservation
			assert.Equal(t, end.Sub(start), total)

			// Idempotence
			again, err := generic.NewActivityTimeline(aw)
			require.NoError(t, err)
			replay, err := again.Collect()
			require.NoError(t, err)
			assert.Equal(t, got, replay)
		})
	}
}

func TestActivityTimeline_Segments(t *testing.T) {
	segs, err := newTimeline(t, "2021-09-05T22:00:00", "2021-09-06T12:59:00", referenceWindows()).Segments()
	require.NoError(t, err)

	require.Len(t, segs, 5)
	assert.Equal(t, generic.Period{Start: at("2021-09-06T06:00:00"), End: at("2021-09-06T07:00:00")}, segs[3].Period)
	assert.True(t, segs[3].Label.IsResting())
	assert.Equal(t, 359*time.Minute, segs[4].Duration())
}

func TestActivityTimeline_LongSpanStreams(t *testing.T) {
	// A year of activity tallied without collecting anything
	tl := newTimeline(t, "2038-01-01T00:00:00", "2039-01-01T00:00:00", referenceWindows())

	b, err := generic.Tally(tl)
	require.NoError(t, err)
	assert.Equal(t, 365*24*time.Hour, b.Total())
	assert.Greater(t, b.Resting, 900*time.Hour)
}
