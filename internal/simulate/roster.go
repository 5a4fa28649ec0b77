package simulate

import "evfleet-sim/internal/agent"

// Roster interns agents by id so that two callers constructing "agent 5"
// independently still observe the same *agent.Agent. A Simulator builds one
// Roster from the agent list it's given at construction and never creates
// agents outside it.
type Roster struct {
	order []*agent.Agent
	byID  map[string]*agent.Agent
}

// NewRoster interns agents, keeping the order duplicates-excluded order.
// A later agent sharing an id already seen is dropped: scheduling order is
// the order the unique ids first appear in.
func NewRoster(agents []*agent.Agent) *Roster {
	r := &Roster{byID: make(map[string]*agent.Agent, len(agents))}
	for _, a := range agents {
		key := string(a.ID)
		if _, exists := r.byID[key]; exists {
			continue
		}
		r.byID[key] = a
		r.order = append(r.order, a)
	}
	return r
}

// Agents returns the roster in scheduling order.
func (r *Roster) Agents() []*agent.Agent { return r.order }

// Lookup returns the interned agent for id, or nil if unknown.
func (r *Roster) Lookup(id string) *agent.Agent { return r.byID[id] }
