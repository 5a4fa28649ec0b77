// Package agent implements per-agent mutable state (state of charge,
// payload, plan position, phase flags) and the Agent wrapper that owns a
// plan, physical capacities, and a noise source.
package agent

import "evfleet-sim/internal/graph"

// State is an agent's mutable simulation state. It is deliberately a plain
// struct with one side-effecting method (ApplySoCDelta) rather than a
// property with a hidden setter, so the out-of-charge/overcharged latching
// happens at one obvious call site instead of on every field write.
type State struct {
	SOC     float64 // [0,1], 1 = full
	Payload float64 // [0,1] fraction of material capacity

	CurrentAction int     // index into the agent's plan
	ActionTimeMin float64 // elapsed minutes in the current phase

	Travelling *Travel // non-nil while crossing an edge
	JustArrived bool
	Waiting     bool
	FinishedAction bool
	Done           bool

	OutOfCharge bool // set when SoC hits 0, cleared by a later in-range delta; the simulator stops stepping an agent once set
	Overcharged bool // set when SoC exceeds 1; cleared once a later delta leaves SoC in (0,1]
}

// Travel names the edge an agent is currently crossing.
type Travel struct {
	From graph.ID
	To   graph.ID
}

// NewState returns the initial Acting state: full battery, empty payload,
// at the plan's first decision.
func NewState() State {
	return State{SOC: 1, Payload: 0}
}

// ApplySoCDelta adds deltaSOC, an energy already divided by
// battery_eff*capacity by the caller (see package simulate), and applies
// the latching invariant: assigning soc<=0 clamps to 0 and latches
// OutOfCharge; assigning soc>1 latches Overcharged without clamping;
// otherwise both flags clear. Returns the updated state for
// chaining/clarity; s is mutated in place.
func (s *State) ApplySoCDelta(deltaSOC float64) *State {
	next := s.SOC + deltaSOC
	switch {
	case next <= 0:
		s.SOC = 0
		s.OutOfCharge = true
		s.Overcharged = false
	case next > 1:
		s.SOC = next
		s.Overcharged = true
		s.OutOfCharge = false
	default:
		s.SOC = next
		s.OutOfCharge = false
		s.Overcharged = false
	}
	return s
}
