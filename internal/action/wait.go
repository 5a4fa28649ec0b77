package action

import "evfleet-sim/internal/graph"

type waitAction struct {
	minutes float64
}

// Wait holds the agent in place for the given number of minutes, draining
// the battery by leakage power over that time. Every vertex kind permits it.
func Wait(minutes float64) Action { return waitAction{minutes: minutes} }

func (waitAction) Name() string { return "Wait" }

func (waitAction) AllowedOn(graph.VertexKind) bool { return true }

func (w waitAction) Cost(a Agent, _ *graph.Vertex) Cost {
	return Cost{
		Minutes:  w.minutes,
		EnergyWh: -a.LeakagePowerW() * w.minutes / 60,
	}
}
