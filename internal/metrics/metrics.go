package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK = "ok"
)

var (
	PredictionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_prediction_requests_total",
			Help: "Total number of prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admissions_backend_duration_seconds",
			Help:    "Duration of generative backend calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		},
		[]string{"sdk", "outcome"},
	)

	ClampedPredictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admissions_clamped_predictions_total",
			Help: "Number of predictions whose chance was clamped into range",
		},
	)
)
