// Package metrics defines and registers all custom Prometheus metrics for
// the booking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ClassesCreatedTotal counts classes published by admins.
var ClassesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classes_created_total",
		Help:      "Total number of classes created.",
	},
)

// EnrollmentsTotal counts enrollment requests.
// Label:
//   - result: "new" (roster grew) or "repeat" (already enrolled)
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment requests, by result.",
	},
	[]string{"result"},
)

// CancellationsTotal counts cancellation requests.
// Label:
//   - type: "on_time" (seat released) or "late" (seat retained)
var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancellations_total",
		Help:      "Total number of cancellation requests, by cutoff outcome.",
	},
	[]string{"type"},
)

// ClassCacheTotal counts class-list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ClassCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "class_cache_total",
		Help:      "Total number of class-list cache lookups, by result.",
	},
	[]string{"result"},
)
