package extractor_test

import (
	"os"
	"path/filepath"
	"testing"

	"evfleet-sim/internal/action"
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/extractor"
	"evfleet-sim/internal/graph"

	"github.com/stretchr/testify/require"
)

// fakeView is a minimal extractor.SimulationView stub, standing in for a
// live Simulator so the extractors can be tested without one.
type fakeView struct {
	t      float64
	agents []*agent.Agent
}

func (f fakeView) Time() float64            { return f.t }
func (f fakeView) Agents() []*agent.Agent   { return f.agents }

func oneAgent() *agent.Agent {
	return agent.New(agent.Params{
		ID:   "A",
		Plan: []agent.Decision{{Vertex: "V0", Action: action.Null()}, {Vertex: "V1", Action: action.Null()}},
	})
}

func TestTableAppendBeforeStartErrors(t *testing.T) {
	table := extractor.NewTable(nil)
	err := table.Append(fakeView{t: 1, agents: []*agent.Agent{oneAgent()}})
	require.ErrorIs(t, err, extractor.ErrNotStarted)
}

func TestTableStartThenAppendAccumulates(t *testing.T) {
	table := extractor.NewTable(nil)
	a := oneAgent()
	view := fakeView{agents: []*agent.Agent{a}}

	require.NoError(t, table.Start(view))
	require.Equal(t, 1, table.Len())

	view.t = 1
	require.NoError(t, table.Append(view))
	view.t = 2
	require.NoError(t, table.Append(view))

	require.Equal(t, 3, table.Len())
	require.Equal(t, []float64{0, 1, 2}, []float64{table.Rows()[0].Time, table.Rows()[1].Time, table.Rows()[2].Time})
}

func TestTableStartResetsPriorRows(t *testing.T) {
	table := extractor.NewTable(nil)
	a := oneAgent()
	view := fakeView{agents: []*agent.Agent{a}}

	require.NoError(t, table.Start(view))
	require.NoError(t, table.Append(view))
	require.Equal(t, 2, table.Len())

	require.NoError(t, table.Start(view))
	require.Equal(t, 1, table.Len(), "a second Start discards the prior run's rows")
}

func TestBuildRowTracksPendingAndPreviousVertex(t *testing.T) {
	a := oneAgent()
	a.State.CurrentAction = 1

	row := extractor.BuildRow(fakeView{t: 5, agents: []*agent.Agent{a}})
	require.Len(t, row.Agents, 1)
	snap := row.Agents[0]
	require.Equal(t, graph.ID("V1"), snap.PendingVertex)
	require.True(t, snap.HasPrevious)
	require.Equal(t, graph.ID("V0"), snap.PreviousVertex)
}

func TestRenderSnapshotIncludesStatusSuffixes(t *testing.T) {
	a := oneAgent()
	a.State.Waiting = true
	a.State.OutOfCharge = true

	row := extractor.BuildRow(fakeView{agents: []*agent.Agent{a}})
	rendered := extractor.RenderSnapshot(row.Agents[0])
	require.Contains(t, rendered, "WAITING")
	require.Contains(t, rendered, "OOC")
}

func TestRenderSnapshotShowsTravelAsFromTo(t *testing.T) {
	a := oneAgent()
	a.State.Travelling = &agent.Travel{From: "V0", To: "V1"}

	row := extractor.BuildRow(fakeView{agents: []*agent.Agent{a}})
	require.Contains(t, extractor.RenderSnapshot(row.Agents[0]), "V0->V1")
}

func TestCSVWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.csv")

	w, err := extractor.NewCSVWriter(path)
	require.NoError(t, err)

	a := oneAgent()
	view := fakeView{agents: []*agent.Agent{a}}
	require.NoError(t, w.Start(view))
	view.t = 1
	require.NoError(t, w.Append(view))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "time,A")
}

func TestCSVWriterAppendBeforeStartErrors(t *testing.T) {
	dir := t.TempDir()
	w, err := extractor.NewCSVWriter(filepath.Join(dir, "run.csv"))
	require.NoError(t, err)

	err = w.Append(fakeView{agents: []*agent.Agent{oneAgent()}})
	require.ErrorIs(t, err, extractor.ErrNotStarted)
}

func TestWriteRowsRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	err := extractor.WriteRows(filepath.Join(dir, "empty.csv"), nil)
	require.Error(t, err)
}

func TestWriteRowsProducesOneLinePerRowPlusHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")

	table := extractor.NewTable(nil)
	a := oneAgent()
	view := fakeView{agents: []*agent.Agent{a}}
	require.NoError(t, table.Start(view))
	view.t = 1
	require.NoError(t, table.Append(view))

	require.NoError(t, extractor.WriteRows(path, table.Rows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	require.Equal(t, 3, lines, "header + t=0 row + t=1 row")
}
