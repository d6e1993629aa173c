package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PathDirect = "direct"
	PathQueue  = "queue"

	StatusOK    = "ok"
	StatusError = "error"

	ResultStored    = "stored"
	ResultDiscarded = "discarded"
)

var (
	// Ingestion gateway
	EventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulseboard_ingest_events_total",
			Help: "Events submitted to the gateway by path and outcome",
		},
		[]string{"path", "status"},
	)

	// Queue consumer
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulseboard_worker_events_total",
			Help: "Queue items handled by the worker by result",
		},
		[]string{"result"},
	)

	QueuePopErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulseboard_worker_pop_errors_total",
			Help: "Blocking pop failures not caused by shutdown",
		},
	)

	Heartbeats = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulseboard_worker_heartbeats_total",
			Help: "Heartbeat writes by outcome",
		},
		[]string{"status"},
	)

	StoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulseboard_store_write_duration_seconds",
			Help:    "Duration of event store writes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)
