// Package metrics exposes the simulator's Prometheus collectors. A nil
// *Recorder is always safe to call through — every method is a no-op on
// a nil receiver, so callers that don't want metrics just pass nil.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns the collectors registered for one process. NewRecorder
// registers them against reg exactly once per process (subsequent calls
// return the same Recorder and ignore their reg argument) so tests and
// repeated runs in the same binary don't panic on duplicate registration.
type Recorder struct {
	ticks           prometheus.Counter
	microticks      *prometheus.CounterVec
	psiFired        *prometheus.CounterVec
	engineFailures  prometheus.Counter
	koppaStackDepth prometheus.Gauge
}

var (
	registerOnce sync.Once
	shared       *Recorder
)

// NewRecorder registers the simulator's collectors against reg and
// returns a Recorder. Pass prometheus.DefaultRegisterer for the normal
// process-wide /metrics endpoint.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	registerOnce.Do(func() {
		shared = &Recorder{
			ticks: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "trts_ticks_total",
				Help: "Total number of completed ticks.",
			}),
			microticks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "trts_microticks_total",
				Help: "Total number of microticks run, by phase.",
			}, []string{"phase"}),
			psiFired: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "trts_psi_fired_total",
				Help: "Total number of ψ firings, by variant (standard or triple).",
			}, []string{"variant"}),
			engineFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "trts_engine_step_failures_total",
				Help: "Total number of engine steps that failed as a local no-op.",
			}),
			koppaStackDepth: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "trts_koppa_stack_depth",
				Help: "Current depth of the ϙ multi-level stack.",
			}),
		}
		reg.MustRegister(
			shared.ticks,
			shared.microticks,
			shared.psiFired,
			shared.engineFailures,
			shared.koppaStackDepth,
		)
	})
	return shared
}

func (r *Recorder) ObserveTick() {
	if r == nil {
		return
	}
	r.ticks.Inc()
}

func (r *Recorder) ObserveMicrotick(phase string) {
	if r == nil {
		return
	}
	r.microticks.WithLabelValues(phase).Inc()
}

func (r *Recorder) ObservePsiFired(variant string) {
	if r == nil {
		return
	}
	r.psiFired.WithLabelValues(variant).Inc()
}

func (r *Recorder) ObserveEngineFailure() {
	if r == nil {
		return
	}
	r.engineFailures.Inc()
}

func (r *Recorder) ObserveKoppaStackDepth(depth int) {
	if r == nil {
		return
	}
	r.koppaStackDepth.Set(float64(depth))
}
