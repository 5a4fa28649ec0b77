package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a private Prometheus registry tracking simulator-level
// counters: ticks processed, terminations by reason, and latched physical
// limits. It can be gathered in-process via Registry().Gather(); nothing in this
// package exposes an HTTP /metrics endpoint, since serving one is out of
// scope for a local, no-network CLI.
type Metrics struct {
	registry *prometheus.Registry

	Ticks              prometheus.Counter
	TerminatedAllDone  prometheus.Counter
	TerminatedStopTime prometheus.Counter
	ExtractorFailures  prometheus.Counter
	OutOfChargeLatches prometheus.Counter
	OverchargeLatches  prometheus.Counter
}

// NewMetrics builds a fresh, unregistered-elsewhere registry so that
// multiple Simulator instances (e.g. under internal/batch) never collide
// on Prometheus's default global registerer.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_ticks_total",
			Help: "Total simulator ticks processed.",
		}),
		TerminatedAllDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_terminations_all_done_total",
			Help: "Simulation runs that terminated because every agent reached Done.",
		}),
		TerminatedStopTime: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_terminations_stop_time_total",
			Help: "Simulation runs that terminated by reaching stop_time with unfinished agents.",
		}),
		ExtractorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_extractor_failures_total",
			Help: "Data extractor Append calls that returned an error.",
		}),
		OutOfChargeLatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_out_of_charge_total",
			Help: "Agent state transitions latching out_of_charge.",
		}),
		OverchargeLatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evfleet_sim_overcharge_total",
			Help: "Agent state transitions latching overcharged.",
		}),
	}

	reg.MustRegister(
		m.Ticks,
		m.TerminatedAllDone,
		m.TerminatedStopTime,
		m.ExtractorFailures,
		m.OutOfChargeLatches,
		m.OverchargeLatches,
	)
	return m
}

// Registry exposes the underlying registry for in-process gathering (tests,
// or a future exporter wired by an external driver).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// OrNop returns m, or a freshly built (and therefore discardable) Metrics
// if m is nil.
func OrNop(m *Metrics) *Metrics {
	if m == nil {
		return NewMetrics()
	}
	return m
}
