package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"evfleet-sim/internal/extractor"
	"evfleet-sim/internal/scenario"
	"evfleet-sim/internal/simulate"

	"github.com/stretchr/testify/require"
)

func TestRegistryNamesIncludesAllFour(t *testing.T) {
	names := scenario.Names()
	require.Contains(t, names, "toy")
	require.Contains(t, names, "charger-loop")
	require.Contains(t, names, "contention")
	require.Contains(t, names, "multistop")
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	_, ok := scenario.Lookup("does-not-exist")
	require.False(t, ok)
}

func TestEveryRegisteredExampleRunsToClose(t *testing.T) {
	for _, name := range scenario.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			ex, ok := scenario.Lookup(name)
			require.True(t, ok)

			g, agents := ex.Build(nil)
			require.NotEmpty(t, agents)

			sim := simulate.New(simulate.Params{
				Graph: g, Agents: agents,
				Extractor:     extractor.NewTable(nil),
				DeltaMin:      ex.DeltaMin,
				BatteryEff:    ex.BatteryEff,
				LeakagePowerW: ex.LeakagePowerW,
			})
			require.NoError(t, sim.Start(ex.StopTimeMin))
			ticks := 0
			for !sim.ShouldClose() && ticks < 100000 {
				sim.Update()
				ticks++
			}
			require.True(t, sim.ShouldClose(), "scenario %q did not terminate", name)
		})
	}
}

func TestLoadFileBuildsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
graph:
  vertices:
    - {id: V0, kind: empty}
agents:
  - id: A
    plan:
      - vertex: V0
        action: {name: wait, minutes: 5}
simulation:
  delta_min: 1
  stop_time_min: 20
`), 0o644))

	cfg, g, agents, err := scenario.LoadFile(path, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 1, g.Len())
	require.Len(t, agents, 1)
	require.Equal(t, "A", string(agents[0].ID))
}

func TestLoadFileRejectsUnknownActionName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
graph:
  vertices:
    - {id: V0}
agents:
  - plan:
      - vertex: V0
        action: {name: teleport}
`), 0o644))

	_, _, _, err := scenario.LoadFile(path, nil)
	require.Error(t, err)
}
