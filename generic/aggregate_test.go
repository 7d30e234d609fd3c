package generic_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-rates/generic"
)

func referenceRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(20),
		decimal.NewFromInt(25),
		decimal.NewFromInt(30),
		decimal.NewFromInt(35),
	}
}

func TestTally_ReferenceWeek(t *testing.T) {
	// GIVEN: Monday 07:00 to Sunday 19:00
	tl := newTimeline(t, "2038-01-11T07:00:00", "2038-01-17T19:00:00", referenceWindows())

	// WHEN: Tallied
	b, err := generic.Tally(tl)
	require.NoError(t, err)

	// THEN: Per-window minutes and rest add up to the span
	assert.Equal(t, 4320*time.Minute, b.Working[stdDay])
	assert.Equal(t, 1740*time.Minute, b.Working[stdNight])
	assert.Equal(t, 1500*time.Minute, b.Working[extDay])
	assert.Equal(t, 780*time.Minute, b.Working[extNight])
	assert.Equal(t, 17*time.Hour, b.Resting)
	assert.Equal(t, 156*time.Hour, b.Total())

	owed, err := b.Owed(referenceRates())
	require.NoError(t, err)
	v, err := owed.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(202200), v)
	assert.Equal(t, generic.UnitCredits, owed.Unit)
}

func TestTally_WeekdayToWeekend(t *testing.T) {
	b, err := generic.Tally(newTimeline(t, "2038-01-01T20:15:00", "2038-01-02T04:15:00", referenceWindows()))
	require.NoError(t, err)

	owed, err := b.Owed(referenceRates())
	require.NoError(t, err)
	assert.Equal(t, "13725", owed.Value.String())
	assert.Equal(t, generic.NewAmountFromInt(165, generic.UnitMinutes), b.Minutes(stdDay))
}

func TestBreakdown_WholeMinutesOnly(t *testing.T) {
	b := generic.NewBreakdown(1)
	require.NoError(t, b.Add(generic.Segment{
		Period: generic.Period{Start: at("2038-01-11T07:00:00"), End: at("2038-01-11T07:01:59")},
		Label:  generic.Working(0),
	}))

	owed, err := b.Owed([]decimal.Decimal{decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "10", owed.Value.String(), "1m59s counts as one minute")
}

func TestBreakdown_Errors(t *testing.T) {
	b := generic.NewBreakdown(2)

	err := b.Add(generic.Segment{Label: generic.Working(5)})
	assert.Error(t, err)

	_, err = b.Owed(referenceRates())
	assert.ErrorIs(t, err, generic.ErrRateCount)
}

func TestBreakdown_IgnoresFinished(t *testing.T) {
	b := generic.NewBreakdown(1)
	require.NoError(t, b.Add(generic.Segment{
		Period: generic.Period{Start: at("2038-01-11T07:00:00"), End: at("2038-01-11T08:00:00")},
		Label:  generic.Finished(),
	}))
	assert.Zero(t, b.Total())
}

func TestAmount_Int64(t *testing.T) {
	v, err := generic.NewAmountFromInt(42, generic.UnitCredits).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = generic.Amount{Value: decimal.RequireFromString("1.5"), Unit: generic.UnitCredits}.Int64()
	assert.ErrorIs(t, err, generic.ErrAmountOverflow)

	_, err = generic.Amount{Value: decimal.RequireFromString("9223372036854775808"), Unit: generic.UnitCredits}.Int64()
	assert.ErrorIs(t, err, generic.ErrAmountOverflow)
}

func TestAmount_MulRelabels(t *testing.T) {
	minutes := generic.NewAmountFromInt(90, generic.UnitMinutes)

	owed := minutes.Mul(decimal.NewFromInt(25), generic.UnitCredits)

	assert.Equal(t, "2250 credits", owed.String())
	assert.Equal(t, "90 minutes", minutes.String(), "receiver is unchanged")
}

func TestLabel_Strings(t *testing.T) {
	assert.Equal(t, "working(2)", generic.Working(2).String())
	assert.Equal(t, "resting", generic.Resting().String())
	assert.Equal(t, "finished", generic.Finished().String())
	assert.Equal(t, "working", generic.LabelWorking.String())
	assert.Equal(t, "label_kind(9)", generic.LabelKind(9).String())

	assert.Equal(t, "2021-09-06T06:00:00 resting", resting("2021-09-06T06:00:00").String())
}
