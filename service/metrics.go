package service

import "github.com/prometheus/client_golang/prometheus"

var (
	calculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emi_calculations_total",
		Help: "Summaries served, by cache outcome",
	}, []string{"cache"})

	editsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emi_edits_total",
		Help: "Input edits by field, input channel and outcome",
	}, []string{"field", "channel", "outcome"})
)

func init() {
	prometheus.MustRegister(calculationsTotal)
	prometheus.MustRegister(editsTotal)
}

func recordEdit(field, channel string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	editsTotal.WithLabelValues(field, channel, outcome).Inc()
}
