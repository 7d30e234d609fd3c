/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Endpoint-level response wrappers

TYPES:
  Calculation:
    CalculateResponse, CalculationDTO, CalculationDetailDTO

  Timeline:
    TimelineResponse, SegmentDTO, BandTotalDTO

  Scenarios:
    ScenarioDTO, ScenarioRunResponse

The request body of the pricing endpoints is the shift document itself
(factory.DocumentJSON), so there are no *Request types.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: DocumentJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-rates/generic"
	"github.com/warp/shift-rates/robot"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CalculateResponse is the answer to POST /api/calculate.
type CalculateResponse struct {
	Value int64  `json:"value"`
	ID    string `json:"id"`
}

// PeriodDTO is a naive [start, end) interval.
type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SegmentDTO is one timeline segment.
type SegmentDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label"` // band name or "rest"
	Minutes int64  `json:"minutes"`
}

// BandTotalDTO is what one band contributed.
type BandTotalDTO struct {
	Band    string `json:"band"`
	Minutes int64  `json:"minutes"`
	Rate    string `json:"rate"`
	Owed    string `json:"owed"`
}

// TimelineResponse is the answer to POST /api/timeline.
type TimelineResponse struct {
	Shift       PeriodDTO      `json:"shift"`
	Value       int64          `json:"value"`
	RestMinutes int64          `json:"rest_minutes"`
	Bands       []BandTotalDTO `json:"bands"`
	Segments    []SegmentDTO   `json:"segments"`
}

// CalculationDTO represents a stored calculation in list responses.
type CalculationDTO struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Shift        PeriodDTO `json:"shift"`
	DocumentHash string    `json:"document_hash"`
	Rates        []string  `json:"rates"`
	Value        string    `json:"value"`
}

// CalculationDetailDTO is a stored calculation with what each band contributed.
type CalculationDetailDTO struct {
	CalculationDTO
	RestMinutes int64          `json:"rest_minutes"`
	Bands       []BandTotalDTO `json:"bands"`
}

// ScenarioDTO represents a reference shift that can be run as a demo.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Expected    *int64 `json:"expected,omitempty"`
}

// ScenarioRunResponse is the answer to POST /api/scenarios/{id}/run.
type ScenarioRunResponse struct {
	Scenario ScenarioDTO      `json:"scenario"`
	Result   TimelineResponse `json:"result"`
	ID       string           `json:"id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPeriodDTO(p generic.Period) PeriodDTO {
	return PeriodDTO{Start: generic.FormatNaive(p.Start), End: generic.FormatNaive(p.End)}
}

func segmentLabel(l generic.Label) string {
	if b, ok := robot.BandOf(l); ok {
		return b.String()
	}
	if l.IsResting() {
		return "rest"
	}
	return l.String()
}

func toSegmentDTOs(segments []generic.Segment) []SegmentDTO {
	dtos := make([]SegmentDTO, len(segments))
	for i, s := range segments {
		dtos[i] = SegmentDTO{
			Start:   generic.FormatNaive(s.Start),
			End:     generic.FormatNaive(s.End),
			Label:   segmentLabel(s.Label),
			Minutes: int64(s.Duration() / time.Minute),
		}
	}
	return dtos
}

func toTimelineResponse(q *robot.Quote, s robot.Schedule, value int64) TimelineResponse {
	minutes := make([]int64, len(robot.Bands))
	for _, b := range robot.Bands {
		minutes[b] = q.Minutes(b)
	}
	return TimelineResponse{
		Shift:       toPeriodDTO(q.Shift),
		Value:       value,
		RestMinutes: q.RestMinutes(),
		Bands:       toBandTotalDTOs(robot.BandNames(), minutes, s.RateValues()),
		Segments:    toSegmentDTOs(q.Segments),
	}
}

// toBandTotalDTOs zips band names, whole minutes and rates, all indexed by window.
func toBandTotalDTOs(bands []string, minutes []int64, rates []decimal.Decimal) []BandTotalDTO {
	dtos := make([]BandTotalDTO, 0, len(bands))
	for i, name := range bands {
		if i >= len(minutes) || i >= len(rates) {
			break
		}
		owed := generic.NewAmountFromInt(minutes[i], generic.UnitMinutes).Mul(rates[i], generic.UnitCredits)
		dtos = append(dtos, BandTotalDTO{
			Band:    name,
			Minutes: minutes[i],
			Rate:    rates[i].String(),
			Owed:    owed.Value.String(),
		})
	}
	return dtos
}

func toCalculationDTO(c generic.Calculation) CalculationDTO {
	rates := make([]string, len(c.Rates))
	for i, r := range c.Rates {
		rates[i] = r.String()
	}
	return CalculationDTO{
		ID:           string(c.ID),
		CreatedAt:    c.CreatedAt,
		Shift:        toPeriodDTO(c.Shift),
		DocumentHash: c.DocumentHash,
		Rates:        rates,
		Value:        c.Owed.Value.String(),
	}
}

func toCalculationDetailDTO(c generic.Calculation) CalculationDetailDTO {
	return CalculationDetailDTO{
		CalculationDTO: toCalculationDTO(c),
		RestMinutes:    c.RestMinutes,
		Bands:          toBandTotalDTOs(c.Bands, c.Minutes, c.Rates),
	}
}
