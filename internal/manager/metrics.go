package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	inferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "classifyd",
			Name:      "inference_duration_seconds",
			Help:      "Duration of tokenize + forward pass per prediction",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"model"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classifyd",
			Name:      "predictions_total",
			Help:      "Successful predictions by model and predicted class",
		},
		[]string{"model", "class"},
	)

	inferenceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classifyd",
			Name:      "inference_errors_total",
			Help:      "Failed predictions by model",
		},
		[]string{"model"},
	)

	truncatedInputsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classifyd",
			Name:      "truncated_inputs_total",
			Help:      "Inputs cut to the token limit before the forward pass",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(inferenceDuration, predictionsTotal, inferenceErrorsTotal, truncatedInputsTotal)
}
