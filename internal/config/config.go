// Package config loads scenario definitions — graph, agents, plans, and
// simulation parameters — from YAML, via the usual Load/LoadUnchecked/
// Validate trio plus file-relative sub-file resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a scenario file.
type Config struct {
	// GraphFile optionally points at a separate YAML holding just the graph
	// section. Graph (if also set) overrides fields it defines.
	GraphFile  string           `yaml:"graph_file"`
	Graph      GraphConfig      `yaml:"graph"`
	Agents     []AgentConfig    `yaml:"agents"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// GraphConfig is the vertex/edge section.
type GraphConfig struct {
	Vertices []VertexConfig `yaml:"vertices"`
	Edges    []EdgeConfig   `yaml:"edges"`
}

// VertexConfig describes one vertex. Kind is one of "empty", "ev_charger",
// "material_load", "material_discharge" (default "empty"); Rate is ignored
// for "empty". Capacity of 0 (the YAML zero value) means unlimited — set it
// explicitly to a positive integer to bound occupancy.
type VertexConfig struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	Rate     float64 `yaml:"rate"`
	Capacity int     `yaml:"capacity"`
}

// EdgeConfig describes one directed edge.
type EdgeConfig struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
	Time   float64 `yaml:"time"`
}

// AgentConfig describes one agent and its plan.
type AgentConfig struct {
	ID                 string             `yaml:"id"`
	Plan               []DecisionConfig   `yaml:"plan"`
	BatteryCapacityWh  float64            `yaml:"battery_capacity_wh"`
	MaterialCapacityKg float64            `yaml:"material_capacity_kg"`
	BatteryEff         float64            `yaml:"battery_eff"`
	LeakagePowerW      float64            `yaml:"leakage_power_w"`
	Uncertainty        *UncertaintyConfig `yaml:"uncertainty"`
}

// DecisionConfig describes one (vertex, action) pair in an agent's plan.
type DecisionConfig struct {
	Vertex string       `yaml:"vertex"`
	Action ActionConfig `yaml:"action"`
}

// ActionConfig names an action and its parameters. Name is one of "null",
// "wait", "charge", "load_material", "discharge_material". Minutes is used
// by wait; Limit by charge/load_material/discharge_material; Mass
// optionally overrides load_material/discharge_material's computed mass.
type ActionConfig struct {
	Name    string   `yaml:"name"`
	Minutes float64  `yaml:"minutes"`
	Limit   *float64 `yaml:"limit"`
	Mass    *float64 `yaml:"mass"`
}

// UncertaintyConfig selects an agent's noise source: "zero" (default) or
// "gaussian" with Mean/Std/Seed.
type UncertaintyConfig struct {
	Kind string  `yaml:"kind"`
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
	Seed uint64  `yaml:"seed"`
}

// SimulationConfig is the simulation-wide parameter block.
type SimulationConfig struct {
	DeltaMin      float64 `yaml:"delta_min"`
	BatteryEff    float64 `yaml:"battery_eff"`
	LeakagePowerW float64 `yaml:"leakage_power_w"`
	StopTimeMin   float64 `yaml:"stop_time_min"`
}

// Load reads, merges, and validates a scenario file at path.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads and merges a scenario file but skips validation,
// useful for debugging or printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.GraphFile != "" {
		graphPath := c.GraphFile
		if !filepath.IsAbs(graphPath) {
			cand := filepath.Join(filepath.Dir(path), graphPath)
			if _, err := os.Stat(cand); err == nil {
				graphPath = cand
			}
		}
		loaded, err := loadGraphFile(graphPath)
		if err != nil {
			return nil, err
		}
		c.Graph = mergeGraph(loaded, c.Graph)
	}
	return &c, nil
}

type graphFileWrapper struct {
	Graph GraphConfig `yaml:"graph"`
}

func loadGraphFile(path string) (GraphConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return GraphConfig{}, fmt.Errorf("config: read graph file %s: %w", path, err)
	}
	var w graphFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return GraphConfig{}, fmt.Errorf("config: parse graph file %s: %w", path, err)
	}
	return w.Graph, nil
}

// mergeGraph overlays override's vertices/edges onto base's when override
// supplies any (non-empty override wins wholesale per section, since a
// graph's sections are collections rather than scalars).
func mergeGraph(base, override GraphConfig) GraphConfig {
	out := base
	if len(override.Vertices) > 0 {
		out.Vertices = override.Vertices
	}
	if len(override.Edges) > 0 {
		out.Edges = override.Edges
	}
	return out
}

// Validate reports whether c describes a constructible scenario: every
// vertex has an id, there is at least one agent, every agent has a
// non-empty plan, and every plan step names an action and a declared
// vertex. Edges are not checked; an endpoint that names no declared vertex
// is auto-added when the graph is built.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: nil config")
	}
	vertices := make(map[string]struct{}, len(c.Graph.Vertices))
	for _, v := range c.Graph.Vertices {
		if v.ID == "" {
			return fmt.Errorf("config: vertex with empty id")
		}
		vertices[v.ID] = struct{}{}
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("config: scenario has no agents")
	}
	for _, a := range c.Agents {
		// Agent ids may be omitted in a scenario file; the scenario package
		// mints a fresh uuid for any agent that doesn't supply one.
		if len(a.Plan) == 0 {
			return fmt.Errorf("config: agent %q has an empty plan", a.ID)
		}
		for i, d := range a.Plan {
			if d.Vertex == "" {
				return fmt.Errorf("config: agent %q plan step %d has no vertex", a.ID, i)
			}
			if d.Action.Name == "" {
				return fmt.Errorf("config: agent %q plan step %d has no action", a.ID, i)
			}
			if _, ok := vertices[d.Vertex]; !ok {
				return fmt.Errorf("config: agent %q plan step %d names undeclared vertex %q", a.ID, i, d.Vertex)
			}
		}
	}
	return nil
}
