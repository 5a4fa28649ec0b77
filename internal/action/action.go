// Package action implements the closed family of decisions an agent can
// execute at a vertex: Null, Wait, Charge, LoadMaterial, DischargeMaterial.
// Each variant declares which graph.VertexKind values permit it and how to
// compute its (time, energy) cost.
package action

import (
	"errors"
	"fmt"

	"evfleet-sim/internal/graph"
)

// ErrForbiddenAction is what the *ForbiddenActionError returned by
// CheckAllowed unwraps to when an action is checked against a vertex type
// that does not permit it. Cost itself never returns an error.
var ErrForbiddenAction = errors.New("action: forbidden on this vertex type")

// ForbiddenActionError names the action and vertex kind involved.
type ForbiddenActionError struct {
	Action string
	Kind   graph.VertexKind
}

func (e *ForbiddenActionError) Error() string {
	return fmt.Sprintf("action: %s not allowed on vertex type %s", e.Action, e.Kind)
}

func (e *ForbiddenActionError) Unwrap() error { return ErrForbiddenAction }

// CheckAllowed raises a *ForbiddenActionError if act is not permitted on
// kind. Callers must invoke this before Cost, per Action's contract.
func CheckAllowed(act Action, kind graph.VertexKind) error {
	if act.AllowedOn(kind) {
		return nil
	}
	return &ForbiddenActionError{Action: act.Name(), Kind: kind}
}

// Agent is the minimal view an Action needs of the agent it costs for:
// observed state of charge and payload (post-uncertainty), plus the
// physical capacities those fractions are relative to. Built this way
// rather than importing package agent directly, so action has no
// dependency on agent and agent can freely depend on action.
type Agent interface {
	ObservedSOC() float64
	ObservedPayload() float64
	BatteryCapacityWh() float64
	MaterialCapacityKg() float64
	BatteryEfficiency() float64
	LeakagePowerW() float64
}

// Cost is the (time, energy) pair an action reports: Minutes is the time
// the action takes to complete, and EnergyWh is the signed SoC-affecting
// energy — positive for Charge (delivered to the battery), negative for
// Wait/Load/Discharge (battery drain from leakage).
type Cost struct {
	Minutes  float64
	EnergyWh float64
}

// Action is the closed family of decisions a Decision's second field can
// hold. Implementations are unexported; construct them with the factory
// functions below (Null, Wait, Charge, LoadMaterial, DischargeMaterial).
type Action interface {
	// Name identifies the action for logging/CSV rendering and error messages.
	Name() string
	// AllowedOn reports whether this action may run on a vertex of the given kind.
	AllowedOn(kind graph.VertexKind) bool
	// Cost computes the action's (time, energy) cost for agent at vertex.
	// Only valid to call when AllowedOn(vertex.Type.Kind) holds; callers
	// check first rather than rely on Cost to do so, keeping Cost a pure
	// function. Package simulate calls CheckAllowed and, on a
	// ForbiddenActionError, logs it and skips Cost; the error is not
	// returned to its caller.
	Cost(a Agent, v *graph.Vertex) Cost
}
