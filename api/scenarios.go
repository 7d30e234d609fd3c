/*
scenarios.go - Reference shifts runnable as demos

PURPOSE:
  Provides pre-built shifts priced with the reference rate sheet (day
  07:00-23:00, night 23:00-07:00, rates 20/25/30/35). Each one exercises a
  specific part of the engine and, where known, carries the expected total.

AVAILABLE SCENARIOS:
  sunday-night:   Weekend night into a weekday morning, first rest at 06:00
  friday-early:   Friday just after midnight through the whole weekend
  friday-late:    Friday 23:01, weekend switch after 59 minutes
  week-2038:      Monday 07:00 to Sunday 19:00, total 202200
  new-year-2038:  Friday evening into Saturday night, total 13725

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/week-2038/run

Running a scenario goes through the same path as POST /api/timeline: the
document is parsed by the factory and priced with segments. Like POST
/api/calculate, it is recorded in history.

SEE ALSO:
  - handlers.go: priceBody, record
  - robot/presets.go: Reference documents
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/shift-rates/robot"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

func expect(v int64) *int64 { return &v }

var scenarios = []ScenarioDTO{
	{
		ID:          "sunday-night",
		Name:        "Sunday Night",
		Description: "Extra day into extra night into standard night, rest at 06:00, day rate from 07:00",
		Start:       "2021-09-05T22:00:00",
		End:         "2021-09-06T12:59:00",
	},
	{
		ID:          "friday-early",
		Name:        "Friday Early Start",
		Description: "Friday 00:01 through the weekend with a rest every nine hours",
		Start:       "2021-09-10T00:01:00",
		End:         "2021-09-12T00:30:00",
	},
	{
		ID:          "friday-late",
		Name:        "Friday Late Start",
		Description: "Friday 23:01, weekend night from midnight, first rest at 07:01",
		Start:       "2021-09-10T23:01:00",
		End:         "2021-09-11T12:55:00",
	},
	{
		ID:          "week-2038",
		Name:        "Full Week",
		Description: "Monday 07:00 to Sunday 19:00",
		Start:       "2038-01-11T07:00:00",
		End:         "2038-01-17T19:00:00",
		Expected:    expect(202200),
	},
	{
		ID:          "new-year-2038",
		Name:        "New Year Weekend",
		Description: "Friday 20:15 to Saturday 04:15 across the weekday/weekend boundary",
		Start:       "2038-01-01T20:15:00",
		End:         "2038-01-02T04:15:00",
		Expected:    expect(13725),
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the reference shifts.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario prices a reference shift and records it.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scenario, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	doc := robot.ReferenceDocumentJSON(scenario.Start, scenario.End)
	p, err := h.price([]byte(doc), true)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	c, err := h.record(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calculation", err)
		return
	}

	if scenario.Expected != nil && *scenario.Expected != p.value {
		h.Logger.Warn().
			Str("scenario", scenario.ID).
			Int64("expected", *scenario.Expected).
			Int64("value", p.value).
			Msg("scenario total differs from expected")
	}

	writeJSON(w, http.StatusOK, ScenarioRunResponse{
		Scenario: scenario,
		Result:   toTimelineResponse(p.quote, p.schedule, p.value),
		ID:       string(c.ID),
	})
}
