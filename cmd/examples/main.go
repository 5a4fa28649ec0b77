// Command examples is the local, no-network CLI driver:
// `examples <name> [key=value ...] [--debug] [--verbose] [--quiet] [--log
// <dir>]`. It loads a named scenario from the in-process registry
// (internal/scenario) or, if name names a file on disk, from YAML, runs it
// to completion, and prints a summary; with --log it also writes the
// run's CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/extractor"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/overrides"
	"evfleet-sim/internal/scenario"
	"evfleet-sim/internal/simulate"
	"evfleet-sim/internal/telemetry"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "examples:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: examples <name> [key=value ...] [--debug] [--verbose] [--quiet] [--log <dir>]")
	fmt.Println()
	fmt.Println("registered scenarios:")
	for _, n := range scenario.Names() {
		ex, _ := scenario.Lookup(n)
		fmt.Printf("  %-14s %s\n", ex.Name, ex.Description)
	}
	fmt.Println()
	fmt.Println("<name> may also be a path to a scenario YAML file.")
}

func run(name string, rest []string) error {
	fs := flag.NewFlagSet("examples", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "debug-level logging")
	verbose := fs.Bool("verbose", false, "info-level logging")
	quiet := fs.Bool("quiet", false, "suppress all but warnings and errors")
	logDir := fs.String("log", "", "directory to write a per-run CSV into")
	// The flag package stops at the first non-flag token, so parse again
	// after each one: flags may come before, between, or after key=value.
	var tokens []string
	for args := rest; ; {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		tokens = append(tokens, fs.Arg(0))
		args = fs.Args()[1:]
	}

	log, err := buildLogger(*debug, *verbose, *quiet)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	params, _ := overrides.Parse(tokens)

	g, agents, deltaMin, batteryEff, leakageW, stopTimeMin, err := load(name, log)
	if err != nil {
		return err
	}
	deltaMin, batteryEff, leakageW, stopTimeMin = params.Apply(deltaMin, batteryEff, leakageW, stopTimeMin)

	table := extractor.NewTable(log)
	sim := simulate.New(simulate.Params{
		Graph:         g,
		Agents:        agents,
		Extractor:     table,
		DeltaMin:      deltaMin,
		BatteryEff:    batteryEff,
		LeakagePowerW: leakageW,
		Log:           log,
		Metrics:       telemetry.NewMetrics(),
	})

	if err := sim.Start(stopTimeMin); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	for !sim.ShouldClose() {
		sim.Update()
	}

	fmt.Printf("ran %q: %d ticks, t=%.3fmin, %d rows, %d agents\n",
		name, sim.Iteration(), sim.Time(), table.Len(), len(agents))

	if *logDir != "" {
		if err := os.MkdirAll(*logDir, 0o755); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		path := filepath.Join(*logDir, filepath.Base(name)+".csv")
		if err := extractor.WriteRows(path, table.Rows()); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("wrote %d rows to %s\n", table.Len(), path)
	}
	return nil
}

// load resolves name to a runnable scenario: first the in-process
// registry, then (if name isn't a registered scenario) a YAML file on
// disk. It returns the simulation-wide defaults the scenario was designed
// to run under, which overrides.Parse's result then layers on top of.
func load(name string, log *telemetry.Logger) (g *graph.Graph, agents []*agent.Agent, deltaMin, batteryEff, leakageW, stopTimeMin float64, err error) {
	if ex, ok := scenario.Lookup(name); ok {
		g, agents = ex.Build(log)
		return g, agents, ex.DeltaMin, ex.BatteryEff, ex.LeakagePowerW, ex.StopTimeMin, nil
	}

	cfg, g, agents, err := scenario.LoadFile(name, log)
	if err != nil {
		return nil, nil, 0, 0, 0, 0, fmt.Errorf("load %q: not a registered scenario and not a loadable file: %w", name, err)
	}
	return g, agents, cfg.Simulation.DeltaMin, cfg.Simulation.BatteryEff, cfg.Simulation.LeakagePowerW, cfg.Simulation.StopTimeMin, nil
}

func buildLogger(debug, verbose, quiet bool) (*telemetry.Logger, error) {
	switch {
	case quiet:
		z, err := zap.NewProduction(zap.IncreaseLevel(zap.WarnLevel))
		if err != nil {
			return nil, err
		}
		return telemetry.New(z), nil
	case debug:
		return telemetry.NewDevelopment()
	case verbose:
		z, err := zap.NewProduction(zap.IncreaseLevel(zap.InfoLevel))
		if err != nil {
			return nil, err
		}
		return telemetry.New(z), nil
	default:
		return telemetry.NewProduction()
	}
}
