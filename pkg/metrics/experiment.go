package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the analyze HTTP handler
	AnalyzeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_latency_seconds",
		Help:    "Latency of the post analysis handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of analyses served
	AnalyzeRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_requests_total",
		Help: "Total number of analysis requests",
	})

	// Latency of a full experiment run
	ExperimentRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "experiment_run_duration_seconds",
		Help:    "Wall time of a full experiment run",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	// Total experiment runs executed, by allocation policy
	ExperimentRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "experiment_runs_total",
		Help: "Total experiment runs executed",
	}, []string{"policy"})
)

func Init() {
	prometheus.MustRegister(
		AnalyzeLatency,
		AnalyzeRequests,
		ExperimentRunDuration,
		ExperimentRuns,
	)
}
