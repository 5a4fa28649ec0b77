package scenario

import (
	"fmt"
	"sort"

	"evfleet-sim/internal/action"
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/telemetry"
	"evfleet-sim/internal/uncertainty"

	"github.com/google/uuid"
)

// Example is one named, in-process scenario: a graph/agent builder plus the
// simulation-wide parameters it was designed to run under. This is the
// in-process half of the CLI's "load an example by name or file" support;
// LoadFile covers the file-based half.
type Example struct {
	Name        string
	Description string

	DeltaMin      float64
	BatteryEff    float64
	LeakagePowerW float64
	StopTimeMin   float64

	Build func(log *telemetry.Logger) (*graph.Graph, []*agent.Agent)
}

var registry = map[string]Example{}

func register(e Example) { registry[e.Name] = e }

// Lookup returns the named example, or ok=false if no such scenario is registered.
func Lookup(name string) (Example, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns every registered scenario name, sorted for deterministic
// --help/usage output.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newAgentID() graph.AgentID {
	return graph.AgentID(uuid.New().String())
}

func init() {
	register(Example{
		Name:          "toy",
		Description:   "single empty vertex, one agent idling on a Null plan",
		DeltaMin:      0.1,
		BatteryEff:    1.0,
		LeakagePowerW: 0,
		StopTimeMin:   1,
		Build: func(log *telemetry.Logger) (*graph.Graph, []*agent.Agent) {
			g := graph.New(log)
			g.AddVertex("V0", graph.EmptyType(), graph.Unlimited)
			a := agent.New(agent.Params{
				ID:   newAgentID(),
				Plan: []agent.Decision{{Vertex: "V0", Action: action.Null()}},
			})
			return g, []*agent.Agent{a}
		},
	})

	register(Example{
		Name:          "charger-loop",
		Description:   "one EVCharger vertex, one agent charging from soc=0.4 to 0.8",
		DeltaMin:      0.1,
		BatteryEff:    0.5,
		LeakagePowerW: 0,
		StopTimeMin:   5,
		Build: func(log *telemetry.Logger) (*graph.Graph, []*agent.Agent) {
			g := graph.New(log)
			g.AddVertex("V0", graph.EVChargerType(6000), graph.Unlimited)
			a := agent.New(agent.Params{
				ID:                newAgentID(),
				BatteryCapacityWh: 100,
				Plan:              []agent.Decision{{Vertex: "V0", Action: action.Charge(0.8)}},
				InitialState:      &agent.State{SOC: 0.4},
				Uncertainty:       uncertainty.Zero{},
			})
			return g, []*agent.Agent{a}
		},
	})

	register(Example{
		Name:          "contention",
		Description:   "two agents waiting on a capacity-1 vertex forever",
		DeltaMin:      0.5,
		BatteryEff:    1.0,
		LeakagePowerW: 0,
		StopTimeMin:   10,
		Build: func(log *telemetry.Logger) (*graph.Graph, []*agent.Agent) {
			g := graph.New(log)
			g.AddVertex("V0", graph.EmptyType(), 1)
			agents := make([]*agent.Agent, 0, 2)
			for _, id := range []string{"A", "B"} {
				agents = append(agents, agent.New(agent.Params{
					ID:                graph.AgentID(id),
					BatteryCapacityWh: 100,
					Plan:              []agent.Decision{{Vertex: "V0", Action: action.Wait(1)}},
				}))
			}
			return g, agents
		},
	})

	register(Example{
		Name:          "multistop",
		Description:   "eight agents sharing a 13-decision plan over a mixed-type graph",
		DeltaMin:      1.0,
		BatteryEff:    0.75,
		LeakagePowerW: 5,
		StopTimeMin:   180,
		Build:         buildMultistop,
	})
}

// buildMultistop constructs a reference eight-agent example: a depot
// (load), a discharge site, and a charger arranged in a loop, with every
// agent running an identical 13-decision round trip.
func buildMultistop(log *telemetry.Logger) (*graph.Graph, []*agent.Agent) {
	g := graph.New(log)
	g.AddVertex("depot", graph.MaterialLoadType(50), graph.Unlimited)
	g.AddVertex("charger", graph.EVChargerType(7000), 4)
	g.AddVertex("site", graph.MaterialDischargeType(40), 2)
	g.AddVertex("hub", graph.EmptyType(), graph.Unlimited)

	edges := []graph.Edge{
		{From: "depot", To: "hub", Weight: 5, Time: 4},
		{From: "hub", To: "charger", Weight: 3, Time: 3},
		{From: "charger", To: "site", Weight: 6, Time: 5},
		{From: "site", To: "hub", Weight: 4, Time: 4},
		{From: "hub", To: "depot", Weight: 5, Time: 4},
	}
	for _, e := range edges {
		g.AddEdge(e)
	}

	plan := func() []agent.Decision {
		return []agent.Decision{
			{Vertex: "depot", Action: action.LoadMaterial(1, nil)},
			{Vertex: "hub", Action: action.Null()},
			{Vertex: "charger", Action: action.Charge(0.9)},
			{Vertex: "site", Action: action.DischargeMaterial(0, nil)},
			{Vertex: "hub", Action: action.Null()},
			{Vertex: "depot", Action: action.LoadMaterial(1, nil)},
			{Vertex: "hub", Action: action.Null()},
			{Vertex: "charger", Action: action.Charge(0.9)},
			{Vertex: "site", Action: action.DischargeMaterial(0, nil)},
			{Vertex: "hub", Action: action.Null()},
			{Vertex: "depot", Action: action.LoadMaterial(1, nil)},
			{Vertex: "hub", Action: action.Null()},
			{Vertex: "depot", Action: action.Null()},
		}
	}

	agents := make([]*agent.Agent, 0, 8)
	for i := 0; i < 8; i++ {
		agents = append(agents, agent.New(agent.Params{
			ID:                 graph.AgentID(fmt.Sprintf("agent-%d", i)),
			Plan:               plan(),
			BatteryCapacityWh:  5000,
			MaterialCapacityKg: 300,
		}))
	}
	return g, agents
}
