package action

import "evfleet-sim/internal/graph"

type loadAction struct {
	limit float64
	mass  *float64
}

// LoadMaterial loads material toward a payload fraction of limit (default
// callers use 1), optionally an explicit mass in kg instead of filling to
// the limit. Only MaterialLoad vertices permit it. Cost reports only the
// loading time and the leakage drain over it; finishing the action does not
// change the agent's payload (the simulator applies only the energy).
func LoadMaterial(limit float64, mass *float64) Action {
	return loadAction{limit: limit, mass: mass}
}

func (loadAction) Name() string { return "LoadMaterial" }

func (loadAction) AllowedOn(kind graph.VertexKind) bool { return kind == graph.MaterialLoad }

func (l loadAction) Cost(a Agent, v *graph.Vertex) Cost {
	payload := a.ObservedPayload()
	if payload >= l.limit {
		return Cost{}
	}
	massKg := (l.limit - payload) * a.MaterialCapacityKg()
	if l.mass != nil {
		massKg = *l.mass
	}
	minutes := massKg / v.Type.Rate
	return Cost{
		Minutes:  minutes,
		EnergyWh: -a.LeakagePowerW() * minutes / 60,
	}
}

type dischargeAction struct {
	limit float64
	mass  *float64
}

// DischargeMaterial discharges material toward a payload fraction of limit
// (default callers use 0), optionally an explicit mass in kg. Only
// MaterialDischarge vertices permit it. As with LoadMaterial, finishing the
// action does not change the agent's payload.
func DischargeMaterial(limit float64, mass *float64) Action {
	return dischargeAction{limit: limit, mass: mass}
}

func (dischargeAction) Name() string { return "DischargeMaterial" }

func (dischargeAction) AllowedOn(kind graph.VertexKind) bool { return kind == graph.MaterialDischarge }

func (d dischargeAction) Cost(a Agent, v *graph.Vertex) Cost {
	payload := a.ObservedPayload()
	if payload <= d.limit {
		return Cost{}
	}
	massKg := (payload - d.limit) * a.MaterialCapacityKg()
	if d.mass != nil {
		massKg = *d.mass
	}
	minutes := massKg / v.Type.Rate
	return Cost{
		Minutes:  minutes,
		EnergyWh: -a.LeakagePowerW() * minutes / 60,
	}
}
