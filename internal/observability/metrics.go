// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cadence_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// HabitTransitions counts habit lifecycle transitions by kind.
	HabitTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cadence_habit_transitions_total",
		Help: "Total number of habit lifecycle transitions (archive, restore, purge)",
	}, []string{"transition"})

	// CompletionWrites counts completion upserts and removals.
	CompletionWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cadence_completion_writes_total",
		Help: "Total number of habit completion writes by kind",
	}, []string{"kind"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
