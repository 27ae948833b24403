package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UserRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of user service requests",
		},
		[]string{"method", "path"},
	)

	UserRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_requests_in_flight",
			Help: "Number of user service requests currently being processed",
		},
	)

	UserRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of rejected logins",
		},
	)

	PasswordChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "password_changes_total",
			Help: "Total number of successful password changes",
		},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	JWTValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwt_validations_total",
			Help: "Total number of JWT validations",
		},
	)

	JWTValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwt_validations_failed_total",
			Help: "Total number of failed JWT validations",
		},
	)
)
