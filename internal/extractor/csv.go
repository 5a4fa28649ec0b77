package extractor

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVWriter is the columnar-file DataExtractor sink. It shares Table's
// append-only contract but serializes straight to disk: header
// "time,<agent_repr_1>,<agent_repr_2>,..." then one row per tick. Agent
// columns are ordered by the first Start call's agent roster order and
// held fixed afterward.
type CSVWriter struct {
	w       *csv.Writer
	closer  io.Closer
	started bool
	header  []string
}

// NewCSVWriter creates (or truncates) the file at path and returns a writer
// ready for Start.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("extractor: create csv: %w", err)
	}
	return &CSVWriter{w: csv.NewWriter(f), closer: f}, nil
}

// Start writes the header (derived from the first row's agent ids) and the
// t=0 row.
func (c *CSVWriter) Start(view SimulationView) error {
	row := BuildRow(view)
	c.header = append([]string{"time"}, agentColumns(row)...)
	if err := c.w.Write(c.header); err != nil {
		return fmt.Errorf("extractor: write csv header: %w", err)
	}
	c.started = true
	return c.writeRow(row)
}

// Append writes one tick's row. Returns ErrNotStarted if Start was never called.
func (c *CSVWriter) Append(view SimulationView) error {
	if !c.started {
		return ErrNotStarted
	}
	return c.writeRow(BuildRow(view))
}

func (c *CSVWriter) writeRow(row Row) error {
	record := make([]string, 0, len(row.Agents)+1)
	record = append(record, strconv.FormatFloat(row.Time, 'f', 6, 64))
	for _, snap := range row.Agents {
		record = append(record, RenderSnapshot(snap))
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("extractor: write csv row: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}

// WriteRows serializes an already-collected slice of Rows (e.g. from a
// Table that drove a live run) straight to a CSV file at path, using the
// same header/row format as the live CSVWriter, for callers that only
// decided they wanted a file after the run finished.
func WriteRows(path string, rows []Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("extractor: no rows to write")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("extractor: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, agentColumns(rows[0])...)); err != nil {
		return fmt.Errorf("extractor: write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, 0, len(row.Agents)+1)
		record = append(record, strconv.FormatFloat(row.Time, 'f', 6, 64))
		for _, snap := range row.Agents {
			record = append(record, RenderSnapshot(snap))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("extractor: write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	return c.closer.Close()
}

func agentColumns(row Row) []string {
	cols := make([]string, 0, len(row.Agents))
	for _, snap := range row.Agents {
		cols = append(cols, string(snap.AgentID))
	}
	return cols
}

// RenderSnapshot formats one agent's snapshot as
// "<soc%> @ <vertex | from->to>, <action_time>min" with the optional
// suffixes FINISHED, WAITING, OOC, [O] (overcharged).
func RenderSnapshot(snap Snapshot) string {
	loc := string(snap.PendingVertex)
	if snap.State.Travelling != nil {
		loc = fmt.Sprintf("%s->%s", snap.State.Travelling.From, snap.State.Travelling.To)
	}

	s := fmt.Sprintf("%.1f%% @ %s, %.3fmin", snap.State.SOC*100, loc, snap.State.ActionTimeMin)

	if snap.State.FinishedAction {
		s += " FINISHED"
	}
	if snap.State.Waiting {
		s += " WAITING"
	}
	if snap.State.OutOfCharge {
		s += " OOC"
	}
	if snap.State.Overcharged {
		s += " [O]"
	}
	return s
}
