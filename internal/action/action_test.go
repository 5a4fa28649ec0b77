package action_test

import (
	"testing"

	"evfleet-sim/internal/action"
	"evfleet-sim/internal/graph"

	"github.com/stretchr/testify/require"
)

// fakeAgent is a minimal action.Agent stub, since action must not import
// package agent: agent.Agent satisfies this interface but action has no
// compile-time dependency the other way.
type fakeAgent struct {
	soc, payload, batteryWh, materialKg, eff, leakageW float64
}

func (f fakeAgent) ObservedSOC() float64        { return f.soc }
func (f fakeAgent) ObservedPayload() float64    { return f.payload }
func (f fakeAgent) BatteryCapacityWh() float64  { return f.batteryWh }
func (f fakeAgent) MaterialCapacityKg() float64 { return f.materialKg }
func (f fakeAgent) BatteryEfficiency() float64  { return f.eff }
func (f fakeAgent) LeakagePowerW() float64      { return f.leakageW }

func TestAllowedOnMatrix(t *testing.T) {
	cases := []struct {
		act     action.Action
		allowed graph.VertexKind
	}{
		{action.Charge(0.8), graph.EVCharger},
		{action.LoadMaterial(1, nil), graph.MaterialLoad},
		{action.DischargeMaterial(0, nil), graph.MaterialDischarge},
	}
	kinds := []graph.VertexKind{graph.Empty, graph.EVCharger, graph.MaterialLoad, graph.MaterialDischarge}

	for _, c := range cases {
		for _, k := range kinds {
			got := c.act.AllowedOn(k)
			require.Equal(t, k == c.allowed, got, "%s on %s", c.act.Name(), k)
		}
	}

	// Null and Wait are permitted everywhere.
	for _, k := range kinds {
		require.True(t, action.Null().AllowedOn(k))
		require.True(t, action.Wait(1).AllowedOn(k))
	}
}

func TestCheckAllowedForbidden(t *testing.T) {
	err := action.CheckAllowed(action.Charge(0.8), graph.Empty)
	require.ErrorIs(t, err, action.ErrForbiddenAction)

	var fe *action.ForbiddenActionError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, graph.Empty, fe.Kind)
}

func TestChargeCost(t *testing.T) {
	v := graph.New(nil).AddVertex("C", graph.EVChargerType(6000), graph.Unlimited)
	a := fakeAgent{soc: 0.4, eff: 0.5, batteryWh: 100}

	cost := action.Charge(0.8).Cost(a, v)
	require.InDelta(t, 20.0, cost.EnergyWh, 1e-9, "E = (0.8-0.4)*0.5*100 = 20 Wh")
	require.InDelta(t, 0.2, cost.Minutes, 1e-9, "60*20/6000 = 0.2 min")
}

func TestChargeAlreadyAtLimitIsNoOp(t *testing.T) {
	v := graph.New(nil).AddVertex("C", graph.EVChargerType(6000), graph.Unlimited)
	a := fakeAgent{soc: 0.9, eff: 0.5, batteryWh: 100}

	cost := action.Charge(0.8).Cost(a, v)
	require.Zero(t, cost.Minutes)
	require.Zero(t, cost.EnergyWh)
}

func TestWaitCostIsLeakageDrain(t *testing.T) {
	a := fakeAgent{leakageW: 60}
	cost := action.Wait(10).Cost(a, nil)
	require.Equal(t, 10.0, cost.Minutes)
	require.InDelta(t, -10.0, cost.EnergyWh, 1e-9, "60W for 10min = 10Wh drain")
}

func TestLoadMaterialDefaultMass(t *testing.T) {
	v := graph.New(nil).AddVertex("L", graph.MaterialLoadType(50), graph.Unlimited)
	a := fakeAgent{payload: 0.2, materialKg: 200}

	cost := action.LoadMaterial(1, nil).Cost(a, v)
	require.InDelta(t, 160.0, cost.Minutes*50, 1e-9, "mass = (1-0.2)*200 = 160kg")
}

func TestLoadMaterialExplicitMass(t *testing.T) {
	v := graph.New(nil).AddVertex("L", graph.MaterialLoadType(40), graph.Unlimited)
	mass := 80.0
	a := fakeAgent{payload: 0.1, materialKg: 200}

	cost := action.LoadMaterial(1, &mass).Cost(a, v)
	require.InDelta(t, 2.0, cost.Minutes, 1e-9, "80kg / 40kg/min = 2min")
}

func TestDischargeMaterialAtOrBelowLimitIsNoOp(t *testing.T) {
	v := graph.New(nil).AddVertex("D", graph.MaterialDischargeType(10), graph.Unlimited)
	a := fakeAgent{payload: 0}

	cost := action.DischargeMaterial(0, nil).Cost(a, v)
	require.Zero(t, cost.Minutes)
	require.Zero(t, cost.EnergyWh)
}

func TestNullCostIsZero(t *testing.T) {
	cost := action.Null().Cost(fakeAgent{}, nil)
	require.Zero(t, cost.Minutes)
	require.Zero(t, cost.EnergyWh)
}
