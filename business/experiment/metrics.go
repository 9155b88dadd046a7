package experiment

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experiment_evaluations_total",
			Help: "Count of experiment allocation steps by policy and outcome (explore, exploit, skipped).",
		},
		[]string{"policy", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(EvaluationsTotal)
}
