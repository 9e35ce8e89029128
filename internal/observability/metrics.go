package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_recruit_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_recruit_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_recruit_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// VerificationTransitions tracks verification status transitions
	VerificationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_recruit_verification_transitions_total",
			Help: "Number of verification status transitions",
		},
		[]string{"from", "to"},
	)

	// CodeSends tracks one-time code deliveries
	CodeSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_recruit_code_sends_total",
			Help: "Number of one-time verification codes sent",
		},
		[]string{"channel", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_recruit_active_connections",
			Help: "Number of active connections",
		},
	)
)
