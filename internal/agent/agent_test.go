package agent_test

import (
	"testing"

	"evfleet-sim/internal/action"
	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/uncertainty"

	"github.com/stretchr/testify/require"
)

func TestNewStateIsFullAndEmpty(t *testing.T) {
	s := agent.NewState()
	require.Equal(t, 1.0, s.SOC)
	require.Equal(t, 0.0, s.Payload)
}

func TestApplySoCDeltaLatchesOutOfCharge(t *testing.T) {
	s := agent.NewState()
	s.ApplySoCDelta(-1.5)

	require.Zero(t, s.SOC)
	require.True(t, s.OutOfCharge)
	require.False(t, s.Overcharged)
}

func TestApplySoCDeltaLatchesOvercharged(t *testing.T) {
	s := agent.State{SOC: 0.9}
	s.ApplySoCDelta(0.5)

	require.InDelta(t, 1.4, s.SOC, 1e-9, "overcharge is not clamped")
	require.True(t, s.Overcharged)
	require.False(t, s.OutOfCharge)
}

func TestApplySoCDeltaClearsFlagsInNormalRange(t *testing.T) {
	s := agent.State{SOC: 0, OutOfCharge: true}
	s.ApplySoCDelta(0.5)

	require.Equal(t, 0.5, s.SOC)
	require.False(t, s.OutOfCharge)
	require.False(t, s.Overcharged)
}

func TestDefaultUncertaintyIsZero(t *testing.T) {
	a := agent.New(agent.Params{
		ID:   "A",
		Plan: []agent.Decision{{Vertex: "V", Action: action.Null()}},
	})
	require.Equal(t, 0.0, a.Uncertainty.Sample())
	require.Equal(t, a.State.SOC, a.ObservedSOC())
}

func TestObservedSOCClipsToUnitRange(t *testing.T) {
	a := agent.New(agent.Params{
		ID:          "A",
		Plan:        []agent.Decision{{Vertex: "V", Action: action.Null()}},
		Uncertainty: constantNoise(0.5),
	})
	a.State.SOC = 0.9
	require.Equal(t, 1.0, a.ObservedSOC(), "0.9+0.5 clips to 1.0")
}

func TestApplyDefaultsOnlyFillsZeroFields(t *testing.T) {
	a := agent.New(agent.Params{
		ID:         "A",
		Plan:       []agent.Decision{{Vertex: "V", Action: action.Null()}},
		BatteryEff: 0.9,
	})
	a.ApplyDefaults(0.75, 10)

	require.Equal(t, 0.9, a.BatteryEfficiency(), "agent's own battery_eff is not overwritten")
	require.Equal(t, 10.0, a.LeakagePowerW(), "agent's unset leakage_power_w inherits the simulator default")
}

func TestAgentSatisfiesActionAgentInterface(t *testing.T) {
	var _ action.Agent = (*agent.Agent)(nil)
}

// constantNoise is a deterministic uncertainty.Source for tests that need a
// pinned, non-zero sample.
type constantNoise float64

func (c constantNoise) Sample() float64 { return float64(c) }
func (c constantNoise) Last() float64   { return float64(c) }

var _ uncertainty.Source = constantNoise(0)
