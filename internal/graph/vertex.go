package graph

// AgentID is the hashable key identifying an agent for membership-set
// purposes. The graph never holds a reference to an Agent itself — only
// this id — so Vertex.Members stays a non-owning back-reference and the
// graph package has no dependency on the agent package.
type AgentID string

// Vertex is a node in the graph: a singleton per ID, carrying a type, an
// occupancy capacity, and the live set of agents currently occupying it
// (acting or waiting).
type Vertex struct {
	ID       ID
	Type     Type
	Capacity int // Unlimited (-1) means no cap

	Members map[AgentID]struct{}
}

func newVertex(id ID, typ Type, capacity int) *Vertex {
	return &Vertex{
		ID:       id,
		Type:     typ,
		Capacity: capacity,
		Members:  make(map[AgentID]struct{}),
	}
}

// Enter admits an agent into the membership set. It is idempotent.
func (v *Vertex) Enter(agent AgentID) {
	v.Members[agent] = struct{}{}
}

// Leave removes an agent from the membership set. It is idempotent.
func (v *Vertex) Leave(agent AgentID) {
	delete(v.Members, agent)
}

// Occupancy returns the current membership count.
func (v *Vertex) Occupancy() int {
	return len(v.Members)
}

// OverCapacity reports whether the vertex currently holds more members than
// its capacity allows. Unlimited-capacity vertices are never over capacity.
func (v *Vertex) OverCapacity() bool {
	if v.Capacity == Unlimited {
		return false
	}
	return v.Occupancy() > v.Capacity
}

// MemberIDs returns a stable snapshot of the current membership, sorted so
// callers (the tests among them) see a deterministic order.
func (v *Vertex) MemberIDs() []AgentID {
	return sortedAgentIDs(v.Members)
}
