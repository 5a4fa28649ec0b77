package extractor

import (
	"errors"

	"evfleet-sim/internal/telemetry"
)

// ErrNotStarted is returned by Append if Start has not been called yet.
var ErrNotStarted = errors.New("extractor: Start has not been called")

// DataExtractor is the contract a simulator drives every tick: a single
// Append method that atomically records one Row. Table (in-memory) and
// CSVWriter (columnar file) both implement it.
type DataExtractor interface {
	// Start records the t=0 row and marks the extractor ready.
	Start(view SimulationView) error
	// Append records one tick's row.
	Append(view SimulationView) error
}

// Table is the in-memory DataExtractor: an append-only slice of Rows.
type Table struct {
	started bool
	rows    []Row
	log     *telemetry.Logger
}

// NewTable builds an empty, unstarted in-memory table.
func NewTable(log *telemetry.Logger) *Table {
	return &Table{log: telemetry.OrNop(log)}
}

// Start records the t=0 snapshot.
func (t *Table) Start(view SimulationView) error {
	t.started = true
	t.rows = t.rows[:0]
	t.rows = append(t.rows, BuildRow(view))
	return nil
}

// Append records one tick's row. Returns ErrNotStarted if Start was never called.
func (t *Table) Append(view SimulationView) error {
	if !t.started {
		return ErrNotStarted
	}
	t.rows = append(t.rows, BuildRow(view))
	return nil
}

// Rows returns the recorded rows in tick order (index 0 is the t=0 start row).
func (t *Table) Rows() []Row { return t.rows }

// Len returns the number of recorded rows (iteration+1).
func (t *Table) Len() int { return len(t.rows) }
