package generic

import (
	"slices"
	"time"
)

// referenceSunday anchors the week walked by ValidatePartition (2023-01-01 is a Sunday).
var referenceSunday = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidatePartition checks that windows cover every instant of the week exactly
// once. Window membership only changes at a window start, a window end or
// midnight, so checking those points on each weekday covers the whole week.
func ValidatePartition(windows []RateWindow) error {
	if len(windows) == 0 {
		return ErrNoWindows
	}

	boundaries := []time.Duration{0}
	for i, w := range windows {
		if err := w.Validate(); err != nil {
			return &WindowError{Index: i, Window: w, Err: err}
		}
		boundaries = append(boundaries, w.Start.Offset(), w.End.Offset())
	}
	slices.Sort(boundaries)
	boundaries = slices.Compact(boundaries)

	for d := 0; d < 7; d++ {
		day := referenceSunday.AddDate(0, 0, d)
		for _, off := range boundaries {
			if _, err := classify(windows, day.Add(off)); err != nil {
				return err
			}
		}
	}
	return nil
}
