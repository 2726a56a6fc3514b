// Package prom adapts placement.Metrics to Prometheus client_golang, in the
// same style as shardcache's metrics/prom package: a constructor that
// registers every metric eagerly and a thin set of methods satisfying the
// target interface.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vlsiplace/vlsiplace/placement"
)

// Adapter implements placement.Metrics and exports Prometheus counters/
// gauges/histograms for batches of annealing steps. Safe for concurrent use;
// all Prometheus metric types are goroutine-safe, though a single *Adapter is
// typically driven by one annealing run at a time (see schedule.RunIndependent,
// which gives each *placement.State, and thus each batch of ObserveBatch
// calls, its own goroutine but may share one Adapter across them).
type Adapter struct {
	batches      prometheus.Counter
	stepsTotal   prometheus.Counter
	acceptedPct  prometheus.Gauge
	meanDelta    prometheus.Gauge
	stdDevDelta  prometheus.Gauge
	temperature  prometheus.Gauge
	deltaObserve prometheus.Histogram
}

// New constructs a Prometheus metrics adapter for the placement package.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "batches_total",
			Help:        "Number of RunSteps batches observed",
			ConstLabels: constLabels,
		}),
		stepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "steps_total",
			Help:        "Total annealing steps attempted across all batches",
			ConstLabels: constLabels,
		}),
		acceptedPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "last_batch_accepted_ratio",
			Help:        "Fraction of steps accepted in the most recent batch",
			ConstLabels: constLabels,
		}),
		meanDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "last_batch_mean_delta",
			Help:        "Mean cost delta over accepted steps in the most recent batch",
			ConstLabels: constLabels,
		}),
		stdDevDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "last_batch_stddev_delta",
			Help:        "Population stddev of cost delta over accepted steps in the most recent batch",
			ConstLabels: constLabels,
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "temperature",
			Help:        "Annealing temperature used for the most recent batch",
			ConstLabels: constLabels,
		}),
		deltaObserve: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "batch_mean_delta_distribution",
			Help:        "Distribution of per-batch mean cost delta across the run",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(a.batches, a.stepsTotal, a.acceptedPct, a.meanDelta, a.stdDevDelta, a.temperature, a.deltaObserve)
	return a
}

// ObserveBatch records one RunSteps call's summary statistics.
func (a *Adapter) ObserveBatch(stats placement.BatchStats, temperature float64) {
	a.batches.Inc()
	a.stepsTotal.Add(float64(stats.NumSteps))
	a.temperature.Set(temperature)
	a.meanDelta.Set(stats.MeanDelta)
	a.stdDevDelta.Set(stats.StdDevDelta)
	a.deltaObserve.Observe(stats.MeanDelta)
	if stats.NumSteps > 0 {
		a.acceptedPct.Set(float64(stats.NumAccepted) / float64(stats.NumSteps))
	} else {
		a.acceptedPct.Set(0)
	}
}

// Compile-time check: ensure Adapter implements placement.Metrics.
var _ placement.Metrics = (*Adapter)(nil)
