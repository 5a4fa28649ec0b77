package action

import "evfleet-sim/internal/graph"

type chargeAction struct {
	limit float64
}

// Charge raises the agent's SoC toward limit (default callers use 0.8) at
// the vertex's charge power, paying the battery's round-trip efficiency.
// Only EVCharger vertices permit it.
func Charge(limit float64) Action { return chargeAction{limit: limit} }

func (chargeAction) Name() string { return "Charge" }

func (chargeAction) AllowedOn(kind graph.VertexKind) bool { return kind == graph.EVCharger }

// Cost: if the agent's observed SoC already meets limit, charging is an
// instant no-op; otherwise the energy delivered to the battery is
// (limit-soc)*eta*capacity, taking 60*E/charge_power minutes at the
// vertex's rate.
func (c chargeAction) Cost(a Agent, v *graph.Vertex) Cost {
	observed := a.ObservedSOC()
	if observed >= c.limit {
		return Cost{}
	}
	energyWh := (c.limit - observed) * a.BatteryEfficiency() * a.BatteryCapacityWh()
	chargePowerW := v.Type.Rate
	return Cost{
		Minutes:  60 * energyWh / chargePowerW,
		EnergyWh: energyWh,
	}
}
