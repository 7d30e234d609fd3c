/*
presets.go - Ready-made rate sheets and shift documents

These helpers build the reference rate sheet (day 07:00-23:00, night
23:00-07:00, rates 20/25/30/35) either as a Go Schedule or as a document
string the factory can parse. The document form is built directly to avoid an
import cycle with the factory package.

USAGE:
  doc := robot.ReferenceDocumentJSON("2038-01-11T07:00:00", "2038-01-17T19:00:00")
  schedule, err := factory.NewScheduleFactory().Parse([]byte(doc))
*/
package robot

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-rates/generic"
)

var (
	dayStart   = generic.NewClockTime(7, 0, 0)
	nightStart = generic.NewClockTime(23, 0, 0)
)

// ReferenceValues are the per-minute rates of the reference sheet, indexed like Bands.
var ReferenceValues = [bandCount]int64{20, 25, 30, 35}

// ReferenceSchedule builds a schedule over [start, end) with the reference sheet.
func ReferenceSchedule(start, end time.Time) Schedule {
	return ScheduleWithValues(start, end, ReferenceValues)
}

// ScheduleWithValues builds a schedule with reference clock ranges and custom rates.
func ScheduleWithValues(start, end time.Time, values [bandCount]int64) Schedule {
	s := Schedule{Shift: generic.Period{Start: generic.Naive(start), End: generic.Naive(end)}}
	for _, b := range Bands {
		r := BandRate{Start: dayStart, End: nightStart, Value: decimal.NewFromInt(values[b])}
		if b == StandardNight || b == ExtraNight {
			r.Start, r.End = nightStart, dayStart
		}
		s.Rates[b] = r
	}
	return s
}

// ReferenceDocumentJSON returns a shift document using the reference sheet.
func ReferenceDocumentJSON(start, end string) string {
	return DocumentJSON(start, end, ReferenceValues)
}

// DocumentJSON returns a shift document with reference clock ranges and custom rates.
func DocumentJSON(start, end string, values [bandCount]int64) string {
	band := func(from, to generic.ClockTime, value int64) map[string]interface{} {
		return map[string]interface{}{
			"start": from.String(),
			"end":   to.String(),
			"value": value,
		}
	}
	doc := map[string]interface{}{
		"shift": map[string]interface{}{
			"start": start,
			"end":   end,
		},
		"roboRate": map[string]interface{}{
			"standardDay":   band(dayStart, nightStart, values[StandardDay]),
			"standardNight": band(nightStart, dayStart, values[StandardNight]),
			"extraDay":      band(dayStart, nightStart, values[ExtraDay]),
			"extraNight":    band(nightStart, dayStart, values[ExtraNight]),
		},
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	return string(b)
}
