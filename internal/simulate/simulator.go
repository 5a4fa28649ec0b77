// Package simulate implements the tick-driven core: a Roster of agents
// moving over a Graph under a closed family of Actions, stepped by a
// Simulator that owns all three exclusively for the run's duration.
package simulate

import (
	"evfleet-sim/internal/action"
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/extractor"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/telemetry"
)

// DefaultBatteryEff is the simulation-wide round-trip efficiency applied to
// any agent that did not specify its own.
const DefaultBatteryEff = 0.75

// Params bundles a Simulator's construction-time configuration: the graph
// and agents it will own, the sink it reports to every tick, and the
// simulation-wide physical defaults.
type Params struct {
	Graph     *graph.Graph
	Agents    []*agent.Agent
	Extractor extractor.DataExtractor

	// DeltaMin is the tick size in minutes. Defaults to 1 if zero.
	DeltaMin float64
	// BatteryEff is the default round-trip efficiency, (0,1]. Defaults to
	// DefaultBatteryEff (0.75) if zero.
	BatteryEff float64
	// LeakagePowerW is the default idle drain, in watts. Defaults to 0.
	LeakagePowerW float64

	Log     *telemetry.Logger
	Metrics *telemetry.Metrics
}

// Simulator runs the per-tick algorithm: single threaded, deterministic,
// agents visited in roster order every tick, followed by one extractor
// snapshot.
type Simulator struct {
	graph     *graph.Graph
	roster    *Roster
	extractor extractor.DataExtractor

	deltaMin float64

	log     *telemetry.Logger
	metrics *telemetry.Metrics

	timeMin     float64
	iteration   int
	stopTimeMin float64
	started     bool
	shouldClose bool
}

// New builds a Simulator from p. Every agent in p.Agents that left
// BatteryEff/LeakagePowerW unset (the agent.Params zero value) inherits
// p.BatteryEff/p.LeakagePowerW via agent.Agent.ApplyDefaults.
func New(p Params) *Simulator {
	if p.DeltaMin == 0 {
		p.DeltaMin = 1
	}
	if p.BatteryEff == 0 {
		p.BatteryEff = DefaultBatteryEff
	}

	roster := NewRoster(p.Agents)
	for _, a := range roster.Agents() {
		a.ApplyDefaults(p.BatteryEff, p.LeakagePowerW)
	}

	return &Simulator{
		graph:     p.Graph,
		roster:    roster,
		extractor: p.Extractor,
		deltaMin:  p.DeltaMin,
		log:       telemetry.OrNop(p.Log),
		metrics:   telemetry.OrNop(p.Metrics),
	}
}

// Time returns the simulated time in minutes. Satisfies extractor.SimulationView.
func (s *Simulator) Time() float64 { return s.timeMin }

// Agents returns the roster in scheduling order. Satisfies extractor.SimulationView.
func (s *Simulator) Agents() []*agent.Agent { return s.roster.Agents() }

// ShouldClose reports whether the run has reached a terminal condition:
// stop_time_min reached, every agent Done, or an extractor failure.
func (s *Simulator) ShouldClose() bool { return s.shouldClose }

// Iteration returns the number of Update calls processed so far.
func (s *Simulator) Iteration() int { return s.iteration }

// Start initializes the run: zeros time and iteration, records stopTimeMin,
// clears should_close, admits every agent into its plan's first vertex, and
// hands the extractor its t=0 snapshot. An extractor failure here is fatal
// to Start, since there is no prior tick to fall back on.
func (s *Simulator) Start(stopTimeMin float64) error {
	s.timeMin = 0
	s.iteration = 0
	s.stopTimeMin = stopTimeMin
	s.shouldClose = false
	s.started = true

	s.admitInitialPositions()

	if err := s.extractor.Start(s); err != nil {
		s.metrics.ExtractorFailures.Inc()
		return err
	}
	s.log.Info("simulate: started", "stop_time_min", stopTimeMin, "agents", len(s.roster.Agents()))
	return nil
}

// admitInitialPositions enters every agent that is sitting at its plan's
// current vertex (rather than mid-travel, finished, or already admitted by
// some prior Start) into that vertex's membership set and evaluates its
// waiting predicate. Without this, an agent whose plan begins at the vertex
// it already occupies would never pass through the travel-arrival path that
// normally performs this admission (travelSubPhase only sets JustArrived on
// an edge crossing), so it would never contend for a capacity-bounded
// vertex on its very first decision.
//
// Every such agent occupies its vertex from the start of the run, not in
// roster order, so this runs in two passes: all eligible agents are entered
// into membership before any of their waiting predicates are evaluated.
// Doing it in one pass would give earlier roster entries first claim on a
// capacity-bounded vertex's free slots, which is not true of agents that
// were never in motion. vertex.Enter is idempotent, so calling Start more
// than once on the same Simulator is harmless.
func (s *Simulator) admitInitialPositions() {
	var eligible []*agent.Agent
	for _, a := range s.roster.Agents() {
		st := &a.State
		if st.Done || st.OutOfCharge || st.Travelling != nil || st.JustArrived || st.Waiting {
			continue
		}
		if st.CurrentAction < 0 || st.CurrentAction >= len(a.Plan) {
			continue
		}
		vertex, err := s.graph.Vertex(a.Plan[st.CurrentAction].Vertex)
		if err != nil {
			s.log.Error("simulate: agent's initial plan entry references a non-existent vertex", "agent", a.ID, "vertex", a.Plan[st.CurrentAction].Vertex)
			continue
		}
		vertex.Enter(a.ID)
		eligible = append(eligible, a)
	}
	for _, a := range eligible {
		vertex, _ := s.graph.Vertex(a.Plan[a.State.CurrentAction].Vertex)
		a.State.Waiting = vertex.OverCapacity()
	}
}

// Update runs one tick: advance time/iteration, step every agent through
// its Travel/Act/Advance sub-phases in roster order, check termination,
// then snapshot. Callers loop `for !sim.ShouldClose() { sim.Update() }`
// after Start; an Update before Start logs an error and sets should_close
// without stepping any agent.
func (s *Simulator) Update() {
	if !s.started {
		s.log.Error("simulate: Update called before Start, forcing should_close")
		s.shouldClose = true
		return
	}
	s.metrics.Ticks.Inc()

	s.timeMin += s.deltaMin
	s.iteration++
	s.shouldClose = s.timeMin >= s.stopTimeMin

	allDone := true
	for _, a := range s.roster.Agents() {
		a.State.ActionTimeMin += s.deltaMin
		allDone = allDone && a.State.Done

		if a.State.Done || a.State.OutOfCharge {
			continue
		}
		s.stepAgent(a)
	}

	reachedStopTime := s.shouldClose
	if allDone {
		s.shouldClose = true
	}
	if s.shouldClose && !allDone {
		s.log.Warn("simulate: stop_time_min reached with unfinished agents", "time_min", s.timeMin)
	}

	if err := s.extractor.Append(s); err != nil {
		s.metrics.ExtractorFailures.Inc()
		s.log.Error("simulate: extractor append failed, forcing should_close", "err", err)
		s.shouldClose = true
	}

	if s.shouldClose {
		switch {
		case allDone:
			s.metrics.TerminatedAllDone.Inc()
		case reachedStopTime:
			s.metrics.TerminatedStopTime.Inc()
		}
	}
}

// stepAgent runs one agent through the Travel, Act, and Advance sub-phases
// for the current tick.
func (s *Simulator) stepAgent(a *agent.Agent) {
	st := &a.State
	decision := a.Plan[st.CurrentAction]
	vertex, err := s.graph.Vertex(decision.Vertex)
	if err != nil {
		s.log.Error("simulate: agent's plan references a non-existent vertex", "agent", a.ID, "vertex", decision.Vertex)
		return
	}

	s.travelSubPhase(a)
	if st.Travelling != nil {
		return
	}
	s.actSubPhase(a, decision.Action, vertex)
	if st.FinishedAction {
		s.advanceSubPhase(a, vertex.ID)
	}
}

// travelSubPhase: an agent crossing an edge arrives once it has spent more
// than the edge's travel time, draining SoC by the edge's weight at the
// moment of arrival.
func (s *Simulator) travelSubPhase(a *agent.Agent) {
	st := &a.State
	if st.Travelling == nil {
		return
	}
	edge, err := s.graph.GetEdge(st.Travelling.From, st.Travelling.To)
	if err != nil {
		s.log.Error("simulate: travelling agent's edge no longer exists", "agent", a.ID, "from", st.Travelling.From, "to", st.Travelling.To)
		return
	}
	if st.ActionTimeMin <= edge.Time {
		return
	}
	st.Travelling = nil
	st.JustArrived = true
	st.ActionTimeMin = 0
	s.drainSoC(a, -edge.Weight)
}

// actSubPhase: admission into the vertex's membership set, the waiting
// predicate, and the action's own cost once the agent is no longer
// waiting.
func (s *Simulator) actSubPhase(a *agent.Agent, act action.Action, vertex *graph.Vertex) {
	st := &a.State

	if st.JustArrived {
		vertex.Enter(a.ID)
		st.Waiting = true
		st.JustArrived = false
	}

	if st.Waiting {
		stillWaiting := vertex.OverCapacity()
		cleared := st.Waiting && !stillWaiting
		st.Waiting = stillWaiting
		if cleared {
			st.ActionTimeMin = 0
		}
	}

	if st.Waiting {
		return
	}

	if err := action.CheckAllowed(act, vertex.Type.Kind); err != nil {
		s.log.Critical("simulate: agent's plan attempts a forbidden action", "agent", a.ID, "err", err)
		return
	}
	cost := act.Cost(a, vertex)
	if st.ActionTimeMin <= cost.Minutes {
		return
	}

	vertex.Leave(a.ID)
	st.FinishedAction = true
	s.drainSoC(a, cost.EnergyWh)
}

// advanceSubPhase: once an action has finished, move the agent to its next
// plan entry, or mark it Done if none remains.
func (s *Simulator) advanceSubPhase(a *agent.Agent, currentVertex graph.ID) {
	st := &a.State

	if st.CurrentAction+1 >= len(a.Plan) {
		st.Done = true
		st.ActionTimeMin = 0
		st.FinishedAction = false
		return
	}

	next := a.Plan[st.CurrentAction+1]
	if next.Vertex != currentVertex {
		st.Travelling = &agent.Travel{From: currentVertex, To: next.Vertex}
	}
	st.ActionTimeMin = 0
	st.CurrentAction++
	st.FinishedAction = false
}

// drainSoC applies energyWh to an agent's state of charge
// (soc += e_wh / (battery_eff * battery_capacity_wh)), then latches
// metrics for any newly-set terminal flag. A zero energy leaves the state
// untouched, so zero-cost steps never divide by an unset battery capacity.
func (s *Simulator) drainSoC(a *agent.Agent, energyWh float64) {
	if energyWh == 0 {
		return
	}
	wasOOC, wasOver := a.State.OutOfCharge, a.State.Overcharged
	delta := energyWh / (a.BatteryEfficiency() * a.BatteryCapacityWh())
	a.State.ApplySoCDelta(delta)

	if a.State.OutOfCharge && !wasOOC {
		s.metrics.OutOfChargeLatches.Inc()
		s.log.Warn("simulate: agent latched out_of_charge", "agent", a.ID, "time_min", s.timeMin)
	}
	if a.State.Overcharged && !wasOver {
		s.metrics.OverchargeLatches.Inc()
		s.log.Warn("simulate: agent latched overcharged", "agent", a.ID, "time_min", s.timeMin)
	}
}
