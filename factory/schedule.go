/*
Package factory provides shift document to Go schedule conversion.

PURPOSE:
  Converts shift documents (JSON or YAML) into robot.Schedule values. This is
  the only place external input is parsed; the engine never sees raw text.

DOCUMENT SCHEMA:
  {
    "shift": {
      "start": "2038-01-01T20:15:00",
      "end":   "2038-01-02T04:15:00"
    },
    "roboRate": {
      "standardDay":   {"start": "07:00:00", "end": "23:00:00", "value": 20},
      "standardNight": {"start": "23:00:00", "end": "07:00:00", "value": 25},
      "extraDay":      {"start": "07:00:00", "end": "23:00:00", "value": 30},
      "extraNight":    {"start": "23:00:00", "end": "07:00:00", "value": 35}
    }
  }

  Date-times carry no offset. Values are currency units per minute and must
  be non-negative integers. YAML documents use the same keys.

KEY FEATURES:
  - Rejects unknown JSON fields
  - Validates that the four bands partition the week before anything runs
  - Every failure wraps ErrMalformedDocument (or generic.ErrPartition)

USAGE:
  f := NewScheduleFactory()
  schedule, err := f.Parse(body)

SEE ALSO:
  - robot/types.go: Schedule type definition
  - robot/presets.go: Reference documents
*/
package factory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-rates/generic"
	"github.com/warp/shift-rates/robot"
	"gopkg.in/yaml.v3"
)

// ErrMalformedDocument is returned for documents that cannot be turned into a schedule.
var ErrMalformedDocument = errors.New("malformed shift document")

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// DocumentJSON is the wire representation of a shift document.
type DocumentJSON struct {
	Shift    ShiftJSON    `json:"shift" yaml:"shift"`
	RoboRate RoboRateJSON `json:"roboRate" yaml:"roboRate"`
}

// ShiftJSON is the activity span.
type ShiftJSON struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// RoboRateJSON holds the four bands.
type RoboRateJSON struct {
	StandardDay   *BandJSON `json:"standardDay" yaml:"standardDay"`
	StandardNight *BandJSON `json:"standardNight" yaml:"standardNight"`
	ExtraDay      *BandJSON `json:"extraDay" yaml:"extraDay"`
	ExtraNight    *BandJSON `json:"extraNight" yaml:"extraNight"`
}

// BandJSON is one band's clock range and rate.
type BandJSON struct {
	Start string    `json:"start" yaml:"start"`
	End   string    `json:"end" yaml:"end"`
	Value RateValue `json:"value" yaml:"value"`
}

// RateValue keeps the literal number so that large values survive untouched
// until decimal parsing.
type RateValue string

func (v *RateValue) UnmarshalJSON(b []byte) error {
	*v = RateValue(strings.Trim(string(b), `"`))
	return nil
}

func (v *RateValue) UnmarshalYAML(n *yaml.Node) error {
	*v = RateValue(n.Value)
	return nil
}

func (v RateValue) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return []byte(v), nil
}

func (r RoboRateJSON) byBand() [4]*BandJSON {
	return [4]*BandJSON{
		robot.StandardDay:   r.StandardDay,
		robot.StandardNight: r.StandardNight,
		robot.ExtraDay:      r.ExtraDay,
		robot.ExtraNight:    r.ExtraNight,
	}
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// ScheduleFactory converts shift documents to schedules.
type ScheduleFactory struct{}

// NewScheduleFactory creates a new schedule factory.
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// Parse accepts JSON (anything starting with '{') or YAML.
func (f *ScheduleFactory) Parse(data []byte) (robot.Schedule, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return robot.Schedule{}, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}
	if trimmed[0] == '{' {
		return f.ParseJSON(trimmed)
	}
	return f.ParseYAML(trimmed)
}

// ParseJSON parses a JSON document.
func (f *ScheduleFactory) ParseJSON(data []byte) (robot.Schedule, error) {
	var doc DocumentJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return robot.Schedule{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return f.FromDocument(doc)
}

// ParseYAML parses a YAML document.
func (f *ScheduleFactory) ParseYAML(data []byte) (robot.Schedule, error) {
	var doc DocumentJSON
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return robot.Schedule{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return f.FromDocument(doc)
}

// FromDocument validates a decoded document and builds the schedule.
func (f *ScheduleFactory) FromDocument(doc DocumentJSON) (robot.Schedule, error) {
	var s robot.Schedule

	start, err := generic.ParseNaive(doc.Shift.Start)
	if err != nil {
		return s, fmt.Errorf("%w: shift.start: %v", ErrMalformedDocument, err)
	}
	end, err := generic.ParseNaive(doc.Shift.End)
	if err != nil {
		return s, fmt.Errorf("%w: shift.end: %v", ErrMalformedDocument, err)
	}
	s.Shift = generic.Period{Start: start, End: end}

	for b, band := range doc.RoboRate.byBand() {
		name := robot.Band(b).String()
		if band == nil {
			return s, fmt.Errorf("%w: roboRate: missing %s", ErrMalformedDocument, name)
		}
		rate, err := parseBand(*band)
		if err != nil {
			return s, fmt.Errorf("%w: roboRate.%s: %v", ErrMalformedDocument, name, err)
		}
		s.Rates[b] = rate
	}

	if err := s.Validate(); err != nil {
		if errors.Is(err, generic.ErrPartition) {
			return s, err
		}
		return s, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return s, nil
}

func parseBand(b BandJSON) (robot.BandRate, error) {
	start, err := generic.ParseClockTime(b.Start)
	if err != nil {
		return robot.BandRate{}, fmt.Errorf("start: %w", err)
	}
	end, err := generic.ParseClockTime(b.End)
	if err != nil {
		return robot.BandRate{}, fmt.Errorf("end: %w", err)
	}
	value, err := decimal.NewFromString(string(b.Value))
	if err != nil {
		return robot.BandRate{}, fmt.Errorf("value %q: not a number", string(b.Value))
	}
	if !value.IsInteger() || value.IsNegative() {
		return robot.BandRate{}, fmt.Errorf("value %s: must be a non-negative integer", value)
	}
	return robot.BandRate{Start: start, End: end, Value: value}, nil
}

// IsClientError returns true if the error is the caller's fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedDocument) || generic.IsClientError(err)
}
