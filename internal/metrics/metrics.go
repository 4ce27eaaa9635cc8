// Package metrics holds the Prometheus instruments the resolver updates.
// All collectors are registered with the global registry, so any binary that
// links the resolver can expose or dump them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ResolveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "config_resolve_total",
			Help: "Cumulative number of completed resolution passes.",
		})

	SourceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "config_source_errors_total",
			Help: "Cumulative number of sources that degraded to empty, by source.",
		}, []string{"source"})

	MergedKeys = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "config_merged_keys",
			Help: "Number of keys in the installed merged configuration.",
		})

	ResolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "config_resolve_duration_seconds",
			Help:    "Wall time of one resolution pass.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		})
)

func init() {
	prometheus.MustRegister(
		ResolveTotal,
		SourceErrorsTotal,
		MergedKeys,
		ResolveDuration,
	)
}
