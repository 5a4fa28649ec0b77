package graph

import (
	"sort"

	"golang.org/x/exp/maps"
)

// sortedAgentIDs takes an ordered snapshot of a membership set's keys.
// Map iteration order is unspecified, and callers such as the tests need a
// stable view of "who is here", so we sort the keys taken by maps.Keys
// rather than ranging the map directly.
func sortedAgentIDs(m map[AgentID]struct{}) []AgentID {
	ids := maps.Keys(m)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
