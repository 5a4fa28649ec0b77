// Package scenario compiles a config.Config into a runnable graph and agent
// roster, and exposes a small in-process registry of named scenarios
// (toy, charger-loop, contention, multistop) for the CLI to load by name
// or by file.
package scenario

import (
	"fmt"

	"evfleet-sim/internal/action"
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/config"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/telemetry"
	"evfleet-sim/internal/uncertainty"

	"github.com/google/uuid"
)

// Build compiles cfg into a Graph and an agent roster in config order,
// ready to pass to simulate.Params.
func Build(cfg *config.Config, log *telemetry.Logger) (*graph.Graph, []*agent.Agent, error) {
	g := graph.New(log)
	for _, v := range cfg.Graph.Vertices {
		typ, err := vertexType(v)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario: vertex %q: %w", v.ID, err)
		}
		capacity := v.Capacity
		if capacity == 0 {
			capacity = graph.Unlimited
		}
		g.AddVertex(graph.ID(v.ID), typ, capacity)
	}
	for _, e := range cfg.Graph.Edges {
		g.AddEdge(graph.Edge{From: graph.ID(e.From), To: graph.ID(e.To), Weight: e.Weight, Time: e.Time})
	}

	agents := make([]*agent.Agent, 0, len(cfg.Agents))
	for _, ac := range cfg.Agents {
		a, err := buildAgent(ac)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario: agent %q: %w", ac.ID, err)
		}
		agents = append(agents, a)
	}
	return g, agents, nil
}

func vertexType(v config.VertexConfig) (graph.Type, error) {
	switch v.Kind {
	case "", "empty":
		return graph.EmptyType(), nil
	case "ev_charger":
		return graph.EVChargerType(v.Rate), nil
	case "material_load":
		return graph.MaterialLoadType(v.Rate), nil
	case "material_discharge":
		return graph.MaterialDischargeType(v.Rate), nil
	default:
		return graph.Type{}, fmt.Errorf("unknown vertex kind %q", v.Kind)
	}
}

func buildAgent(ac config.AgentConfig) (*agent.Agent, error) {
	id := ac.ID
	if id == "" {
		// A scenario file may omit agent ids for throwaway/generated fleets;
		// fall back to a fresh uuid rather than leaving the roster column
		// blank.
		id = uuid.New().String()
	}

	plan := make([]agent.Decision, 0, len(ac.Plan))
	for i, dc := range ac.Plan {
		act, err := buildAction(dc.Action)
		if err != nil {
			return nil, fmt.Errorf("plan step %d: %w", i, err)
		}
		plan = append(plan, agent.Decision{Vertex: graph.ID(dc.Vertex), Action: act})
	}

	var src uncertainty.Source
	if ac.Uncertainty != nil {
		switch ac.Uncertainty.Kind {
		case "", "zero":
			src = uncertainty.Zero{}
		case "gaussian":
			src = uncertainty.NewGaussian(ac.Uncertainty.Mean, ac.Uncertainty.Std, ac.Uncertainty.Seed)
		default:
			return nil, fmt.Errorf("unknown uncertainty kind %q", ac.Uncertainty.Kind)
		}
	}

	return agent.New(agent.Params{
		ID:                 graph.AgentID(id),
		Plan:               plan,
		BatteryCapacityWh:  ac.BatteryCapacityWh,
		MaterialCapacityKg: ac.MaterialCapacityKg,
		BatteryEff:         ac.BatteryEff,
		LeakagePowerW:      ac.LeakagePowerW,
		Uncertainty:        src,
	}), nil
}

func buildAction(ac config.ActionConfig) (action.Action, error) {
	switch ac.Name {
	case "null":
		return action.Null(), nil
	case "wait":
		return action.Wait(ac.Minutes), nil
	case "charge":
		return action.Charge(limitOr(ac.Limit, 0.8)), nil
	case "load_material":
		return action.LoadMaterial(limitOr(ac.Limit, 1), ac.Mass), nil
	case "discharge_material":
		return action.DischargeMaterial(limitOr(ac.Limit, 0), ac.Mass), nil
	default:
		return nil, fmt.Errorf("unknown action %q", ac.Name)
	}
}

func limitOr(limit *float64, def float64) float64 {
	if limit == nil {
		return def
	}
	return *limit
}

// LoadFile loads and compiles a scenario from a YAML file on disk.
func LoadFile(path string, log *telemetry.Logger) (*config.Config, *graph.Graph, []*agent.Agent, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	g, agents, err := Build(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, g, agents, nil
}
