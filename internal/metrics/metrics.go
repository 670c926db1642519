// Package metrics holds the Prometheus collectors for the service.
//
// Everything registers on Registry rather than the global default registry,
// so /metrics exposes exactly these series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_booking"

var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Domain metrics
var (
	UsersRegisteredTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of user accounts created",
		},
	)

	EventsCreatedTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Total number of events created",
		},
	)

	// StoreErrorsTotal counts persistence failures by operation, e.g. "create user".
	StoreErrorsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Total number of failed persistence calls",
		},
		[]string{"operation"},
	)

	// APIErrorsTotal counts errors returned to API clients by stable code.
	APIErrorsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of errors returned to API clients",
		},
		[]string{"code"},
	)
)
