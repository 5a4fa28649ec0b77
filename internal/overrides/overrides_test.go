package overrides_test

import (
	"testing"

	"evfleet-sim/internal/overrides"

	"github.com/stretchr/testify/require"
)

func TestParseSplitsKeywordAndPositional(t *testing.T) {
	params, positional := overrides.Parse([]string{"delta_min=0.5", "verbose", "stop_time_min=100"})

	require.Equal(t, 0.5, params.DeltaMin)
	require.Equal(t, 100.0, params.StopTimeMin)
	require.Equal(t, []string{"verbose"}, positional)
}

func TestParseIsCaseInsensitiveOnKeys(t *testing.T) {
	params, _ := overrides.Parse([]string{"BATTERY_EFF=0.9"})
	require.Equal(t, 0.9, params.BatteryEff)
}

func TestParseUnrecognizedKeyIsIgnoredNotErrored(t *testing.T) {
	params, positional := overrides.Parse([]string{"agent_count=12"})
	require.Empty(t, positional)
	require.Zero(t, params.DeltaMin)
}

func TestApplyOnlyOverridesNonZeroFields(t *testing.T) {
	o := overrides.Params{DeltaMin: 2}
	deltaMin, batteryEff, leakageW, stopTimeMin := o.Apply(1, 0.75, 5, 60)

	require.Equal(t, 2.0, deltaMin, "delta_min was overridden")
	require.Equal(t, 0.75, batteryEff, "battery_eff falls through to the scenario default")
	require.Equal(t, 5.0, leakageW)
	require.Equal(t, 60.0, stopTimeMin)
}
