// Package batch runs several independently-constructed simulations
// concurrently. Each run owns its own Graph, agent roster, and
// DataExtractor exclusively, exactly as the core simulator requires; batch
// only supplies the fan-out and the per-run error/result collection.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"evfleet-sim/internal/agent"
	"evfleet-sim/internal/extractor"
	"evfleet-sim/internal/graph"
	"evfleet-sim/internal/simulate"
	"evfleet-sim/internal/telemetry"

	"github.com/google/uuid"
)

// Run describes one scenario to simulate to completion. ID is used only to
// label the Result; if empty, RunAll assigns a fresh uuid so results stay
// addressable even for programmatically generated batches.
type Run struct {
	ID     string
	Graph  *graph.Graph
	Agents []*agent.Agent
	Table  *extractor.Table // caller-owned sink; RunAll starts and drives it

	DeltaMin      float64
	BatteryEff    float64
	LeakagePowerW float64
	StopTimeMin   float64

	Log     *telemetry.Logger
	Metrics *telemetry.Metrics
}

// Result is one run's outcome: either a completed Table (reachable via the
// Run's own Table field, already populated) plus the final iteration
// count, or an error if Start failed or the context was already done when
// the run was due to begin.
type Result struct {
	ID        string
	Iteration int
	TimeMin   float64
	Err       error
}

// MaxConcurrency bounds how many simulations run at once; zero means
// errgroup's default of "unbounded" (one goroutine per run).
func RunAll(ctx context.Context, runs []Run, maxConcurrency int) ([]Result, error) {
	results := make([]Result, len(runs))

	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, r := range runs {
		i, r := i, r
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{ID: r.ID, Err: err}
				return nil
			}
			res := runOne(r)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

func runOne(r Run) Result {
	sim := simulate.New(simulate.Params{
		Graph:         r.Graph,
		Agents:        r.Agents,
		Extractor:     r.Table,
		DeltaMin:      r.DeltaMin,
		BatteryEff:    r.BatteryEff,
		LeakagePowerW: r.LeakagePowerW,
		Log:           r.Log,
		Metrics:       r.Metrics,
	})

	if err := sim.Start(r.StopTimeMin); err != nil {
		return Result{ID: r.ID, Err: fmt.Errorf("batch: run %s: start: %w", r.ID, err)}
	}
	for !sim.ShouldClose() {
		sim.Update()
	}
	return Result{ID: r.ID, Iteration: sim.Iteration(), TimeMin: sim.Time()}
}
