package action

import "evfleet-sim/internal/graph"

type nullAction struct{}

// Null is the zero-cost, always-allowed action: every vertex kind permits it.
func Null() Action { return nullAction{} }

func (nullAction) Name() string { return "Null" }

func (nullAction) AllowedOn(graph.VertexKind) bool { return true }

func (nullAction) Cost(Agent, *graph.Vertex) Cost { return Cost{} }
