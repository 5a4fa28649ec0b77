package graph

import "evfleet-sim/internal/telemetry"

// Graph is the in-memory directed multigraph the simulation runs on: an
// O(1) vertex set keyed by id, plus an adjacency structure supporting O(1)
// lookup of the unique edge from u to v.
//
// A Graph is exclusively owned by one Simulator for the duration of a run;
// it carries no internal locking.
type Graph struct {
	vertices  map[ID]*Vertex
	adjacency map[ID]map[ID]*Edge

	log *telemetry.Logger
}

// New creates an empty graph. A nil logger is replaced with a no-op logger.
func New(log *telemetry.Logger) *Graph {
	return &Graph{
		vertices:  make(map[ID]*Vertex),
		adjacency: make(map[ID]map[ID]*Edge),
		log:       telemetry.OrNop(log),
	}
}

// AddVertex inserts a vertex, or is a no-op if one with the same ID already
// exists (add_vertex is idempotent on equal ids; §4.1).
func (g *Graph) AddVertex(id ID, typ Type, capacity int) *Vertex {
	if v, ok := g.vertices[id]; ok {
		return v
	}
	v := newVertex(id, typ, capacity)
	g.vertices[id] = v
	g.adjacency[id] = make(map[ID]*Edge)
	return v
}

// Vertex looks up a vertex by id.
func (g *Graph) Vertex(id ID) (*Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrNonExistentVertex
	}
	return v, nil
}

// AddEdge inserts e, auto-adding any missing endpoint (with a logged
// warning) and replacing any existing edge with the same (From, To) pair.
func (g *Graph) AddEdge(e Edge) {
	if _, ok := g.vertices[e.From]; !ok {
		g.log.Warn("graph: auto-adding missing edge endpoint", "vertex", string(e.From))
		g.AddVertex(e.From, EmptyType(), Unlimited)
	}
	if _, ok := g.vertices[e.To]; !ok {
		g.log.Warn("graph: auto-adding missing edge endpoint", "vertex", string(e.To))
		g.AddVertex(e.To, EmptyType(), Unlimited)
	}
	g.adjacency[e.From][e.To] = &e
}

// GetEdge returns the unique edge from u to v, or ErrNonExistentEdge.
func (g *Graph) GetEdge(u, v ID) (*Edge, error) {
	nbrs, ok := g.adjacency[u]
	if !ok {
		return nil, ErrNonExistentEdge
	}
	e, ok := nbrs[v]
	if !ok {
		return nil, ErrNonExistentEdge
	}
	return e, nil
}

// Adjacent reports whether an edge u->v exists.
func (g *Graph) Adjacent(u, v ID) bool {
	_, err := g.GetEdge(u, v)
	return err == nil
}

// Neighbors returns the vertices reachable from u by a single edge. Order
// is not significant to the simulator but is sorted for deterministic
// iteration in tests and rendering.
func (g *Graph) Neighbors(u ID) []ID {
	nbrs, ok := g.adjacency[u]
	if !ok {
		return nil
	}
	out := make([]ID, 0, len(nbrs))
	for id := range nbrs {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

// Len returns the number of vertices in the graph.
func (g *Graph) Len() int { return len(g.vertices) }
