// Package metrics defines the prometheus collectors shared across adapters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Room lifecycle metrics
var (
	// RoomsCreatedTotal tracks successfully created rooms
	RoomsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rooms_created_total",
			Help: "Total rooms created",
		},
	)

	// RoomCodeCollisionsTotal tracks code generation collisions during room creation
	RoomCodeCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_code_collisions_total",
			Help: "Total room code collisions that forced a regeneration",
		},
	)

	// MembersJoinedTotal tracks members appended to rooms
	MembersJoinedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "members_joined_total",
			Help: "Total members joined across all rooms",
		},
	)

	// SentimentUpdatesTotal tracks sentiment overwrites by reported label
	SentimentUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_updates_total",
			Help: "Total sentiment updates by label",
		},
		[]string{"sentiment"},
	)
)

// Store metrics
var (
	// StoreOpsTotal tracks store operations by operation and status
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total room store operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// StoreOpDuration tracks store operation latency in seconds
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Room store operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// HTTP metrics
var (
	// HTTPErrorsTotal tracks HTTP errors by type
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)
)
