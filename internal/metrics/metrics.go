// Package metrics provides Prometheus metrics for mars-photos.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marsphotos"

const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
	OutcomeError          = "error"
)

var (
	// FetchTotal counts photo fetches by outcome.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Total number of photo list fetches",
		},
		[]string{"outcome"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of photo list fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	PhotosDecoded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "photos_decoded",
			Help:      "Number of photo records per successful fetch",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		},
	)

	// StateTransitions counts view states entered by fetch controllers.
	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Total number of view states entered",
		},
		[]string{"status"},
	)

	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_publish_total",
			Help:      "Total number of state events handed to publishers",
		},
		[]string{"publisher", "outcome"},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Current number of connected websocket clients",
		},
	)
)

func RecordFetch(outcome string, duration time.Duration, photos int) {
	FetchTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		PhotosDecoded.Observe(float64(photos))
	}
}

func RecordStateTransition(status string) {
	StateTransitions.WithLabelValues(status).Inc()
}

func RecordPublish(publisher, outcome string) {
	PublishTotal.WithLabelValues(publisher, outcome).Inc()
}
