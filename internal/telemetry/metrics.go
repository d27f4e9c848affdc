package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AssessmentsTotal counts completed assessment pipeline runs
	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskmap",
			Name:      "assessments_total",
			Help:      "Total number of assessment pipeline runs",
		},
		[]string{"outcome"},
	)

	// RisksIdentified counts risks created at the identification stage
	RisksIdentified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskmap",
			Name:      "risks_identified_total",
			Help:      "Total number of risks identified from vulnerabilities",
		},
	)

	// RisksTreatable counts risks that failed the acceptance gate
	RisksTreatable = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskmap",
			Name:      "risks_treatable_total",
			Help:      "Total number of risks requiring treatment",
		},
	)

	// FindingsTotal counts scored findings by kind (threat, anomaly)
	FindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskmap",
			Name:      "findings_total",
			Help:      "Total number of scored findings emitted",
		},
		[]string{"kind"},
	)

	// PipelineDuration observes end-to-end pipeline run time
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "riskmap",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of assessment pipeline runs",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(AssessmentsTotal)
		prometheus.DefaultRegisterer.Register(RisksIdentified)
		prometheus.DefaultRegisterer.Register(RisksTreatable)
		prometheus.DefaultRegisterer.Register(FindingsTotal)
		prometheus.DefaultRegisterer.Register(PipelineDuration)
	})
}
