/*
store.go - Persistence interface for calculation history

PURPOSE:
  The engine itself is stateless. Outer shells (HTTP API) keep a history of
  the calculations they ran so callers can fetch them again later. This file
  defines the record and the interface between that shell and the database.

APPEND-ONLY CONTRACT:
  Calculations are immutable once saved:
  - Save(): Single write, rejects an existing ID
  - NO Update() or Delete() methods exist

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for testing

SEE ALSO:
  - api/handlers.go: Saves every calculation it serves
*/
package generic

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDuplicateCalculation is returned when saving a calculation whose ID exists.
var ErrDuplicateCalculation = errors.New("duplicate calculation id")

type CalculationID string

// Calculation is one priced activity, as persisted.
type Calculation struct {
	ID           CalculationID
	CreatedAt    time.Time
	Shift        Period
	DocumentHash string            // sha256 of the input document
	Bands        []string          // window index -> band name
	Rates        []decimal.Decimal // window index -> rate per minute
	Minutes      []int64           // window index -> whole minutes worked
	RestMinutes  int64
	Owed         Amount
}

// CalculationStore persists calculation history.
type CalculationStore interface {
	// Save persists a calculation. Returns ErrDuplicateCalculation if the ID exists.
	Save(ctx context.Context, c Calculation) error

	// Get returns ErrCalculationNotFound if id is unknown.
	Get(ctx context.Context, id CalculationID) (*Calculation, error)

	// List returns the most recent calculations first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Calculation, error)
}
