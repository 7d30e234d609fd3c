package generic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-rates/generic"
)

func TestValidatePartition(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w []generic.RateWindow) []generic.RateWindow
		wantErr error
	}{
		{
			name:   "reference sheet",
			mutate: func(w []generic.RateWindow) []generic.RateWindow { return w },
		},
		{
			name: "shifted boundary on both sides",
			mutate: func(w []generic.RateWindow) []generic.RateWindow {
				w[stdDay].End, w[stdNight].Start = clock(22, 0), clock(22, 0)
				return w
			},
		},
		{
			name: "gap on weekdays",
			mutate: func(w []generic.RateWindow) []generic.RateWindow {
				w[stdDay].End = clock(22, 0)
				return w
			},
			wantErr: generic.ErrUncoveredInstant,
		},
		{
			name: "overlap on the weekend",
			mutate: func(w []generic.RateWindow) []generic.RateWindow {
				w[extNight].Start = clock(22, 0)
				return w
			},
			wantErr: generic.ErrOverlappingWindows,
		},
		{
			name: "weekday set missing friday",
			mutate: func(w []generic.RateWindow) []generic.RateWindow {
				w[stdDay].Days &^= generic.NewWeekdaySet(5)
				return w
			},
			wantErr: generic.ErrUncoveredInstant,
		},
		{
			name: "degenerate window",
			mutate: func(w []generic.RateWindow) []generic.RateWindow {
				w[extDay].End = w[extDay].Start
				return w
			},
			wantErr: generic.ErrDegenerateWindow,
		},
		{
			name:    "no windows",
			mutate:  func([]generic.RateWindow) []generic.RateWindow { return nil },
			wantErr: generic.ErrNoWindows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := generic.ValidatePartition(tt.mutate(referenceWindows()))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePartition_WindowErrorNamesTheWindow(t *testing.T) {
	w := referenceWindows()
	w[extNight].Days = 0

	err := generic.ValidatePartition(w)

	var we *generic.WindowError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, extNight, we.Index)
	assert.ErrorIs(t, err, generic.ErrNoWeekdays)
	assert.Contains(t, err.Error(), "rate window 3")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, generic.IsClientError(generic.ErrUncoveredInstant))
	assert.True(t, generic.IsClientError(&generic.PartitionError{Err: generic.ErrOverlappingWindows}))
	assert.True(t, generic.IsClientError(generic.ErrAmountOverflow))
	assert.False(t, generic.IsClientError(errors.New("disk full")))
	assert.True(t, generic.IsNotFound(generic.ErrCalculationNotFound))
}
