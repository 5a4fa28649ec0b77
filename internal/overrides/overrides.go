// Package overrides turns the example driver's trailing `key=value` tokens
// into simulation-parameter overrides, layering CLI-supplied values onto a
// scenario's defaults the same way a typed config loader layers
// environment variables onto a YAML config via viper — here the override
// source is CLI tokens instead of the environment.
package overrides

import (
	"strings"

	"github.com/spf13/viper"
)

// Params is the subset of simulate.Params an example's key=value tokens may
// override: delta_min, battery_eff, leakage_power_w, stop_time_min. Zero
// means "not overridden" for every field, consistent with how
// simulate.New/agent.ApplyDefaults already treat zero as "use the default".
type Params struct {
	DeltaMin      float64
	BatteryEff    float64
	LeakagePowerW float64
	StopTimeMin   float64
}

// Parse splits tokens into keyword (key=value) and positional (bare token)
// arguments, and decodes the recognized simulation-parameter keys out of
// the keyword set via viper. Unrecognized keys are accepted without error
// and dropped: only the four recognized values are returned.
func Parse(tokens []string) (Params, []string) {
	v := viper.New()
	var positional []string

	for _, t := range tokens {
		key, value, ok := strings.Cut(t, "=")
		if !ok {
			positional = append(positional, t)
			continue
		}
		v.Set(strings.ToLower(key), value)
	}

	return Params{
		DeltaMin:      v.GetFloat64("delta_min"),
		BatteryEff:    v.GetFloat64("battery_eff"),
		LeakagePowerW: v.GetFloat64("leakage_power_w"),
		StopTimeMin:   v.GetFloat64("stop_time_min"),
	}, positional
}

// Apply overlays non-zero fields of o onto the defaults passed in,
// returning the effective (delta, batteryEff, leakage, stopTime) tuple.
func (o Params) Apply(deltaMin, batteryEff, leakageW, stopTimeMin float64) (float64, float64, float64, float64) {
	if o.DeltaMin != 0 {
		deltaMin = o.DeltaMin
	}
	if o.BatteryEff != 0 {
		batteryEff = o.BatteryEff
	}
	if o.LeakagePowerW != 0 {
		leakageW = o.LeakagePowerW
	}
	if o.StopTimeMin != 0 {
		stopTimeMin = o.StopTimeMin
	}
	return deltaMin, batteryEff, leakageW, stopTimeMin
}
