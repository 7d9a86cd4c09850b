// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts finished requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_http_requests_total",
		Help: "HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forkful_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// VotesCast counts successful vote upserts, re-casts included.
	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_votes_cast_total",
		Help: "Votes cast or re-cast.",
	})

	// OrphanVotesPruned counts votes removed after their group was deleted.
	OrphanVotesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_orphan_votes_pruned_total",
		Help: "Votes deleted because their group no longer exists.",
	})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
