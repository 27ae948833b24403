package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TodoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_requests_total",
			Help: "Total number of todo service requests",
		},
		[]string{"method", "path"},
	)

	TodoRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todo_requests_in_flight",
			Help: "Number of todo service requests currently being processed",
		},
	)

	TodoRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_request_duration_seconds",
			Help:    "Duration of todo service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	TodosCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todos_created_total",
			Help: "Total number of todos created",
		},
	)

	TodosUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todos_updated_total",
			Help: "Total number of todos updated",
		},
	)

	TodosDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todos_deleted_total",
			Help: "Total number of todos deleted",
		},
	)

	OwnershipRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ownership_rejections_total",
			Help: "Total number of todo lookups rejected by the ownership scope",
		},
	)
)
