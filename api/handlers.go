/*
handlers.go - HTTP API handlers for the shift rate engine

PURPOSE:
  Exposes the pricing engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the factory and robot packages.

ENDPOINTS:
  Pricing:
    POST   /api/calculate              Price a shift document, {"value": N, "id": ...}
    POST   /api/timeline               Price and return every segment (shifts up to 31 days)

  History:
    GET    /api/calculations           Newest first, ?limit=N
    GET    /api/calculations/{id}      One calculation with per-band totals

  Scenarios:
    GET    /api/scenarios              Reference shifts
    POST   /api/scenarios/{id}/run     Price a reference shift

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Calculation history
  - Factory: Document to Schedule conversion
  - cache: Priced quotes by document hash (otter), nil when disabled

REQUEST FLOW:
  1. Read the body (bounded)
  2. Hash it and look the quote up in the cache
  3. On a miss, parse and run the engine
  4. Save the calculation in history (per-band minutes, never segments)
  5. Serialize response

  /api/calculate streams the timeline (robot.Total), so its cost in memory
  and storage does not depend on the shift length. Only /api/timeline keeps
  segments, and it refuses shifts longer than maxTimelineSpan.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed documents, rate windows that do not partition the week,
         shifts too long for a timeline
  - 404: Unknown calculation or scenario
  - 413: Body too large
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Reference shifts
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"
	"github.com/rs/zerolog"
	"github.com/warp/shift-rates/factory"
	"github.com/warp/shift-rates/generic"
	"github.com/warp/shift-rates/robot"
)

// maxDocumentBytes bounds request bodies. Real documents are a few hundred bytes.
const maxDocumentBytes = 1 << 20

// maxTimelineSpan bounds the shifts whose segments are listed.
const maxTimelineSpan = 31 * 24 * time.Hour

var errTimelineTooLong = errors.New("shift too long for a timeline")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Options configures a Handler.
type Options struct {
	CacheSize    int // 0 disables the result cache
	HistoryLimit int // default page size for ListCalculations
	Logger       zerolog.Logger
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.CalculationStore
	Factory *factory.ScheduleFactory
	Logger  zerolog.Logger

	cache        *otter.Cache[string, pricedDocument]
	historyLimit int

	now   func() time.Time
	newID func() generic.CalculationID
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store generic.CalculationStore, opts Options) *Handler {
	h := &Handler{
		Store:        store,
		Factory:      factory.NewScheduleFactory(),
		Logger:       opts.Logger,
		historyLimit: opts.HistoryLimit,
		now:          time.Now,
		newID:        func() generic.CalculationID { return generic.CalculationID(uuid.NewString()) },
	}
	if h.historyLimit <= 0 {
		h.historyLimit = 50
	}
	if opts.CacheSize > 0 {
		h.cache = otter.Must(&otter.Options[string, pricedDocument]{
			MaximumSize: opts.CacheSize,
		})
	}
	return h
}

// pricedDocument is the engine's answer for one document. It is shared
// between requests through the cache and must not be mutated. quote.Segments
// is nil unless the document was priced with segments.
type pricedDocument struct {
	hash     string
	schedule robot.Schedule
	quote    *robot.Quote
	value    int64
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// Calculate prices a shift document and records it.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.priceBody(w, r, false)
	if !ok {
		return
	}

	c, err := h.record(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calculation", err)
		return
	}

	writeJSON(w, http.StatusOK, CalculateResponse{Value: p.value, ID: string(c.ID)})
}

// Timeline prices a shift document and returns every segment. Nothing is recorded.
// POST /api/timeline
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	p, ok := h.priceBody(w, r, true)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTimelineResponse(p.quote, p.schedule, p.value))
}

// priceBody reads the request body and prices it, writing the error response
// itself on failure.
func (h *Handler) priceBody(w http.ResponseWriter, r *http.Request, withSegments bool) (pricedDocument, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Document too large", err)
			return pricedDocument{}, false
		}
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return pricedDocument{}, false
	}

	p, err := h.price(body, withSegments)
	if err != nil {
		h.writeEngineError(w, err)
		return pricedDocument{}, false
	}
	return p, true
}

// price turns a document into a quote, using the cache when enabled. Without
// segments the timeline is streamed and never held in memory.
func (h *Handler) price(body []byte, withSegments bool) (pricedDocument, error) {
	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])
	key := "total:" + hash
	if withSegments {
		key = "timeline:" + hash
	}

	if h.cache != nil {
		if p, ok := h.cache.GetIfPresent(key); ok {
			cacheLookupsTotal.WithLabelValues("hit").Inc()
			return p, nil
		}
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	schedule, err := h.Factory.Parse(body)
	if err != nil {
		calculationsTotal.WithLabelValues("rejected").Inc()
		return pricedDocument{}, err
	}

	var quote *robot.Quote
	if withSegments {
		if schedule.Shift.Duration() > maxTimelineSpan {
			calculationsTotal.WithLabelValues("rejected").Inc()
			return pricedDocument{}, fmt.Errorf("%w: %s is longer than %s", errTimelineTooLong, schedule.Shift, maxTimelineSpan)
		}
		quote, err = robot.Calculate(schedule)
	} else {
		quote, err = robot.Total(schedule)
	}
	if err != nil {
		calculationsTotal.WithLabelValues(outcome(err)).Inc()
		return pricedDocument{}, err
	}
	value, err := quote.Value()
	if err != nil {
		calculationsTotal.WithLabelValues(outcome(err)).Inc()
		return pricedDocument{}, err
	}

	calculationsTotal.WithLabelValues("ok").Inc()
	if withSegments {
		timelineSegments.Observe(float64(len(quote.Segments)))
	}
	h.Logger.Debug().
		Str("document_hash", hash).
		Str("shift", quote.Shift.String()).
		Bool("segments", withSegments).
		Int64("value", value).
		Msg("priced shift")

	p := pricedDocument{hash: hash, schedule: schedule, quote: quote, value: value}
	if h.cache != nil {
		h.cache.Set(key, p)
	}
	return p, nil
}

// record saves a priced document in history under a fresh ID. Only the
// per-band totals are kept.
func (h *Handler) record(ctx context.Context, p pricedDocument) (generic.Calculation, error) {
	minutes := make([]int64, len(robot.Bands))
	for _, b := range robot.Bands {
		minutes[b] = p.quote.Minutes(b)
	}
	c := generic.Calculation{
		ID:           h.newID(),
		CreatedAt:    h.now().UTC(),
		Shift:        p.quote.Shift,
		DocumentHash: p.hash,
		Bands:        robot.BandNames(),
		Rates:        p.schedule.RateValues(),
		Minutes:      minutes,
		RestMinutes:  p.quote.RestMinutes(),
		Owed:         p.quote.Owed,
	}
	if err := h.Store.Save(ctx, c); err != nil {
		return generic.Calculation{}, err
	}
	return c, nil
}

func outcome(err error) string {
	if isClientError(err) {
		return "rejected"
	}
	return "failed"
}

func isClientError(err error) bool {
	return factory.IsClientError(err) || errors.Is(err, errTimelineTooLong)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListCalculations returns the calculation history, newest first.
// GET /api/calculations?limit=N
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("limit %q must be a positive integer", raw))
			return
		}
		limit = n
	}

	calculations, err := h.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calculations", err)
		return
	}

	dtos := make([]CalculationDTO, len(calculations))
	for i, c := range calculations {
		dtos[i] = toCalculationDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation returns one calculation with its per-band totals.
// GET /api/calculations/{id}
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := generic.CalculationID(chi.URLParam(r, "id"))

	c, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if generic.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Calculation not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load calculation", err)
		return
	}

	writeJSON(w, http.StatusOK, toCalculationDetailDTO(*c))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if isClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid shift document", err)
		return
	}
	h.Logger.Error().Err(err).Msg("pricing failed")
	writeError(w, http.StatusInternalServerError, "Failed to price shift", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
