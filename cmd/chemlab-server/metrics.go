package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics groups the Prometheus collectors for the lab server.
type serverMetrics struct {
	predictions     *prometheus.CounterVec
	predictionError prometheus.Counter
	predictLatency  prometheus.Histogram
	chemicalsAdded  prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chemlab",
			Name:      "predictions_total",
			Help:      "Reaction predictions served, by resulting reaction type.",
		}, []string{"reaction_type"}),
		predictionError: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chemlab",
			Name:      "prediction_errors_total",
			Help:      "Prediction requests that failed.",
		}),
		predictLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chemlab",
			Name:      "prediction_duration_seconds",
			Help:      "Latency of reaction predictions.",
			Buckets:   prometheus.DefBuckets,
		}),
		chemicalsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chemlab",
			Name:      "chemicals_added_total",
			Help:      "Chemicals added through the admin API.",
		}),
	}
}
