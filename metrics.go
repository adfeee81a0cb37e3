package lsystem

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the collectors of one Engine. Collectors are always live;
// they are only exported when a Registerer was supplied.
type metrics struct {
	runs       *prometheus.CounterVec
	aborted    *prometheus.CounterVec
	nodes      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	strokes    *prometheus.CounterVec
	paints     prometheus.Counter
	dropped    prometheus.Counter
	animations prometheus.Gauge
	history    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsystem_runs_total",
			Help: "Generation runs started, by family.",
		}, []string{"family"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsystem_runs_aborted_total",
			Help: "Generation runs stopped before their queue emptied, by family.",
		}, []string{"family"}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsystem_nodes_total",
			Help: "Nodes created by generation runs, by family.",
		}, []string{"family"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lsystem_generation_duration_seconds",
			Help:    "Time spent expanding a figure, by family.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"family"}),
		strokes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsystem_strokes_total",
			Help: "Strokes submitted to the renderer, by kind (draw or erase).",
		}, []string{"kind"}),
		paints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsystem_paints_total",
			Help: "Animated sub-segments painted on the canvas.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsystem_paints_dropped_total",
			Help: "Animated sub-segments skipped because their task expired.",
		}),
		animations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsystem_animations_active",
			Help: "Stroke animations currently running.",
		}),
		history: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsystem_history_depth",
			Help: "Completed figures waiting to be erased, summed over engines sharing the registry.",
		}),
	}
	if reg == nil {
		return m
	}

	m.runs = register(reg, m.runs)
	m.aborted = register(reg, m.aborted)
	m.nodes = register(reg, m.nodes)
	m.duration = register(reg, m.duration)
	m.strokes = register(reg, m.strokes)
	m.paints = register(reg, m.paints)
	m.dropped = register(reg, m.dropped)
	m.animations = register(reg, m.animations)
	m.history = register(reg, m.history)
	return m
}

// register adds c to reg. If an identical collector is already registered,
// as happens with several engines on one registry, that one is returned.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		Logger().Warn("lsystem: metric not registered", "err", err)
	}
	return c
}
