package agent

import (
	"evfleet-sim/internal/action"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/uncertainty"
)

// Decision is a single (vertex, action) pair. An agent's Plan is an
// ordered, non-empty sequence of these.
type Decision struct {
	Vertex graph.ID
	Action action.Action
}

// Agent bundles an id, its plan, physical capacities, a noise source, and
// its mutable State. Construct with New; two agents built with the same ID
// are expected to be the same *Agent (see NewRoster in package simulate,
// which interns by id).
type Agent struct {
	ID   graph.AgentID
	Plan []Decision

	batteryWh  float64
	materialKg float64
	batteryEff float64
	leakageW   float64

	Uncertainty uncertainty.Source

	State State
}

// Params bundles the construction-time fields of an Agent: id, plan,
// battery_capacity?, material_capacity?, uncertainty?, initial_state?.
type Params struct {
	ID                 graph.AgentID
	Plan               []Decision
	BatteryCapacityWh  float64
	MaterialCapacityKg float64
	BatteryEff         float64
	LeakagePowerW      float64
	Uncertainty        uncertainty.Source
	InitialState       *State
}

// New constructs an Agent from Params, defaulting Uncertainty to
// uncertainty.Zero{} when unset, and the initial state to a fresh Acting
// state (full SoC, empty payload) when InitialState is nil. BatteryEff and
// LeakagePowerW are left at whatever Params carries (including zero); a
// Simulator fills in its simulation-wide defaults for any agent that
// didn't specify its own via ApplyDefaults, while still letting an
// individual agent override either one.
func New(p Params) *Agent {
	if p.Uncertainty == nil {
		p.Uncertainty = uncertainty.Zero{}
	}
	state := NewState()
	if p.InitialState != nil {
		state = *p.InitialState
	}
	return &Agent{
		ID:          p.ID,
		Plan:        p.Plan,
		batteryWh:   p.BatteryCapacityWh,
		materialKg:  p.MaterialCapacityKg,
		batteryEff:  p.BatteryEff,
		leakageW:    p.LeakagePowerW,
		Uncertainty: p.Uncertainty,
		State:       state,
	}
}

// ObservedSOC samples a noise value and returns clip(state.soc+noise, 0, 1);
// the sample is drawn fresh on every call.
func (a *Agent) ObservedSOC() float64 {
	return clip01(a.State.SOC + a.Uncertainty.Sample())
}

// ObservedPayload applies the same noise-on-every-read rule to payload.
func (a *Agent) ObservedPayload() float64 {
	return clip01(a.State.Payload + a.Uncertainty.Sample())
}

// BatteryCapacityWh, MaterialCapacityKg, BatteryEfficiency, and
// LeakagePowerW satisfy action.Agent.
func (a *Agent) BatteryCapacityWh() float64  { return a.batteryWh }
func (a *Agent) MaterialCapacityKg() float64 { return a.materialKg }
func (a *Agent) BatteryEfficiency() float64  { return a.batteryEff }
func (a *Agent) LeakagePowerW() float64      { return a.leakageW }

// ApplyDefaults fills batteryEff/leakageW from the simulation-wide values
// a Simulator was built with, for any agent that left them at zero (i.e.
// didn't set its own Params.BatteryEff / Params.LeakagePowerW). Since
// battery_eff's valid range is (0,1], zero unambiguously means "unset";
// leakage's default of 0 means a zero leakage agent is indistinguishable
// from one deferring to the simulator's default; this is a known
// limitation of treating zero as the unset sentinel for that one field.
func (a *Agent) ApplyDefaults(batteryEff, leakageW float64) {
	if a.batteryEff == 0 {
		a.batteryEff = batteryEff
	}
	if a.leakageW == 0 {
		a.leakageW = leakageW
	}
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
