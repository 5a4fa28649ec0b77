// Package extractor implements the append-only, time-indexed table that
// receives a snapshot of every agent's state each tick. Two sinks are
// provided: an in-memory Table and a CSV file writer, both built on the
// same append-only contract.
package extractor

import (
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/graph"
)

// SimulationView is the narrow interface both a Simulator and any
// DataExtractor agree on: the current time and the agent roster, in
// scheduling order.
type SimulationView interface {
	Time() float64
	Agents() []*agent.Agent
}

// Snapshot is one agent's row contribution: a deep copy of its state (so
// later mutation can't alter history), its pending decision, and the
// previous decision's vertex. RenderSnapshot draws the "from->to" of a
// travelling agent from State.Travelling, not from PreviousVertex.
type Snapshot struct {
	AgentID graph.AgentID

	PendingVertex graph.ID
	PendingAction string // Action.Name(), kept as a string so history survives action identity changes

	PreviousVertex graph.ID
	HasPrevious    bool

	State agent.State
}

// Row is one tick's worth of output: the simulated time plus one Snapshot
// per agent, in roster order.
type Row struct {
	Time    float64
	Agents  []Snapshot
}

// BuildRow derives a Row from a SimulationView, looking up each agent's
// pending/previous decision from its own Plan and CurrentAction index.
func BuildRow(view SimulationView) Row {
	agents := view.Agents()
	row := Row{Time: view.Time(), Agents: make([]Snapshot, 0, len(agents))}
	for _, a := range agents {
		row.Agents = append(row.Agents, snapshotOf(a))
	}
	return row
}

func snapshotOf(a *agent.Agent) Snapshot {
	idx := a.State.CurrentAction
	snap := Snapshot{
		AgentID: a.ID,
		State:   a.State,
	}
	// Travelling is agent.State's only pointer field; copy what it points
	// at too, so the snapshot is a deep copy.
	if a.State.Travelling != nil {
		travel := *a.State.Travelling
		snap.State.Travelling = &travel
	}
	if idx >= 0 && idx < len(a.Plan) {
		snap.PendingVertex = a.Plan[idx].Vertex
		snap.PendingAction = a.Plan[idx].Action.Name()
	}
	if idx > 0 {
		snap.PreviousVertex = a.Plan[idx-1].Vertex
		snap.HasPrevious = true
	}
	return snap
}
