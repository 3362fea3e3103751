// Package metrics defines and registers the portal's custom Prometheus
// metrics. It is the single source of truth for metric names, labels and
// help strings; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutelas"

// LoginsTotal counts login attempts handled by the portal.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// BackendRequestsTotal counts calls made to the case API.
// Labels:
//   - operation: the client operation (e.g. "list_tutelas", "create_user")
//   - result: "ok" or "error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the case API, by operation and result.",
	},
	[]string{"operation", "result"},
)

// BackendRequestDuration measures how long a case API call takes end-to-end.
// Label:
//   - operation: the client operation
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of case API calls from request to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
