package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on the registry given to newMetrics, so every
// Server (and every test) owns its own set.
type Metrics struct {
	searches  *prometheus.CounterVec
	solutions prometheus.Histogram
	pruned    prometheus.Histogram
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "traingame_searches_total",
			Help: "Total searches by outcome",
		}, []string{"outcome"}),
		solutions: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "traingame_solutions",
			Help:    "Solutions found per search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		pruned: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "traingame_pruned_divisions",
			Help:    "Division branches skipped for a zero divisor per search",
			Buckets: []float64{0, 1, 5, 10, 50, 100},
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "traingame_search_duration_seconds",
			Help:    "Search duration",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
}
