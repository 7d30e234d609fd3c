/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements generic.CalculationStore using SQLite. Every calculation served
  by the API is kept here with its per-band minutes so it can be fetched
  again later. Timelines are not stored: a row has the same size whatever
  the shift length.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements
  - No DELETE statements

KEY TABLES:
  calculations: One row per priced shift

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/shiftrates.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-rates/generic"
)

// Store implements generic.CalculationStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.CalculationStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		shift_start TEXT NOT NULL,
		shift_end TEXT NOT NULL,
		document_hash TEXT NOT NULL,
		bands_json TEXT NOT NULL,
		rates_json TEXT NOT NULL,
		minutes_json TEXT NOT NULL,
		rest_minutes INTEGER NOT NULL,
		owed_value TEXT NOT NULL,
		owed_unit TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created_at
		ON calculations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_calculations_document_hash
		ON calculations(document_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALCULATION STORE (generic.CalculationStore interface)
// =============================================================================

// Save writes a calculation.
func (s *Store) Save(ctx context.Context, c generic.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bandsJSON, err := json.Marshal(c.Bands)
	if err != nil {
		return fmt.Errorf("failed to encode bands: %w", err)
	}
	rates := make([]string, len(c.Rates))
	for i, r := range c.Rates {
		rates[i] = r.String()
	}
	ratesJSON, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}
	minutesJSON, err := json.Marshal(c.Minutes)
	if err != nil {
		return fmt.Errorf("failed to encode minutes: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations
		(id, created_at, shift_start, shift_end, document_hash, bands_json, rates_json,
		 minutes_json, rest_minutes, owed_value, owed_unit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(c.ID),
		c.CreatedAt.UTC().Format(createdAtLayout),
		generic.FormatNaive(c.Shift.Start),
		generic.FormatNaive(c.Shift.End),
		c.DocumentHash,
		string(bandsJSON),
		string(ratesJSON),
		string(minutesJSON),
		c.RestMinutes,
		c.Owed.Value.String(),
		string(c.Owed.Unit),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return generic.ErrDuplicateCalculation
		}
		return fmt.Errorf("failed to insert calculation: %w", err)
	}
	return nil
}

// Get returns one calculation.
func (s *Store) Get(ctx context.Context, id generic.CalculationID) (*generic.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, shift_start, shift_end, document_hash, bands_json, rates_json,
		       minutes_json, rest_minutes, owed_value, owed_unit
		FROM calculations WHERE id = ?
	`, string(id))

	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrCalculationNotFound
	}
	return c, err
}

// List returns the most recent calculations first.
func (s *Store) List(ctx context.Context, limit int) ([]generic.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, shift_start, shift_end, document_hash, bands_json, rates_json,
		       minutes_json, rest_minutes, owed_value, owed_unit
		FROM calculations ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var out []generic.Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

// createdAtLayout is fixed width so that created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (*generic.Calculation, error) {
	var (
		c                                     generic.Calculation
		id, createdAt, start, end             string
		bandsJSON, ratesJSON, owedValue, unit string
		minutesJSON                           string
	)
	if err := row.Scan(&id, &createdAt, &start, &end, &c.DocumentHash, &bandsJSON, &ratesJSON,
		&minutesJSON, &c.RestMinutes, &owedValue, &unit); err != nil {
		return nil, err
	}
	c.ID = generic.CalculationID(id)

	var err error
	if c.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if c.Shift.Start, err = generic.ParseNaive(start); err != nil {
		return nil, err
	}
	if c.Shift.End, err = generic.ParseNaive(end); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bandsJSON), &c.Bands); err != nil {
		return nil, fmt.Errorf("bad bands_json: %w", err)
	}

	if err := json.Unmarshal([]byte(minutesJSON), &c.Minutes); err != nil {
		return nil, fmt.Errorf("bad minutes_json: %w", err)
	}

	var rates []string
	if err := json.Unmarshal([]byte(ratesJSON), &rates); err != nil {
		return nil, fmt.Errorf("bad rates_json: %w", err)
	}
	for _, r := range rates {
		d, err := decimal.NewFromString(r)
		if err != nil {
			return nil, fmt.Errorf("bad rate %q: %w", r, err)
		}
		c.Rates = append(c.Rates, d)
	}

	owed, err := decimal.NewFromString(owedValue)
	if err != nil {
		return nil, fmt.Errorf("bad owed_value %q: %w", owedValue, err)
	}
	c.Owed = generic.Amount{Value: owed, Unit: generic.Unit(unit)}
	return &c, nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
