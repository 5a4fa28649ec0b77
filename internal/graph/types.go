// Package graph implements the directed, weighted multigraph that agents
// move over: vertices carry a type and a bounded membership set, edges carry
// a traversal time and an energy cost.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph operations.
var (
	// ErrNonExistentEdge indicates GetEdge was called for a pair with no edge.
	ErrNonExistentEdge = errors.New("graph: no edge between the given vertices")

	// ErrNonExistentVertex indicates Vertex was called for an unknown id.
	ErrNonExistentVertex = errors.New("graph: no vertex with the given id")
)

// Unlimited marks a vertex with no occupancy cap.
const Unlimited = -1

// ID is the hashable key identifying a Vertex. Two vertices (or the same
// vertex looked up twice) with equal IDs are the same object.
type ID string

// VertexKind tags the variant a Vertex's Type takes. It determines which
// actions (package action) are admissible on the vertex.
type VertexKind int

const (
	// Empty permits only Null and Wait.
	Empty VertexKind = iota
	// EVCharger permits Null, Wait, and Charge; Rate is charge power in watts.
	EVCharger
	// MaterialLoad permits Null, Wait, and LoadMaterial; Rate is kg/min.
	MaterialLoad
	// MaterialDischarge permits Null, Wait, and DischargeMaterial; Rate is kg/min.
	MaterialDischarge
)

func (k VertexKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case EVCharger:
		return "EVCharger"
	case MaterialLoad:
		return "MaterialLoad"
	case MaterialDischarge:
		return "MaterialDischarge"
	default:
		return fmt.Sprintf("VertexKind(%d)", int(k))
	}
}

// Type is the tagged variant attached to a Vertex. Rate is the single
// numeric parameter a non-Empty kind carries (charge_power_W or a material
// rate in kg/min); it is ignored for Empty.
type Type struct {
	Kind VertexKind
	Rate float64
}

// EmptyType is the zero-parameter Empty vertex type.
func EmptyType() Type { return Type{Kind: Empty} }

// EVChargerType builds an EVCharger type with the given charge power in watts.
func EVChargerType(chargePowerW float64) Type {
	return Type{Kind: EVCharger, Rate: chargePowerW}
}

// MaterialLoadType builds a MaterialLoad type with the given kg/min rate.
func MaterialLoadType(loadRateKgPerMin float64) Type {
	return Type{Kind: MaterialLoad, Rate: loadRateKgPerMin}
}

// MaterialDischargeType builds a MaterialDischarge type with the given kg/min rate.
func MaterialDischargeType(dischargeRateKgPerMin float64) Type {
	return Type{Kind: MaterialDischarge, Rate: dischargeRateKgPerMin}
}

// Edge is a directed, timed, weighted connection between two vertices.
// Weight is the energy cost in Wh to traverse; Time is the travel time in
// minutes. The graph holds at most one edge per ordered (From, To) pair.
type Edge struct {
	From   ID
	To     ID
	Weight float64 // Wh
	Time   float64 // minutes
}

func (e Edge) String() string {
	return fmt.Sprintf("%s->%s", e.From, e.To)
}
