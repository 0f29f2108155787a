// Package metrics defines and registers the Prometheus metrics of the media
// feed API. Metrics are registered on the default registry at package init
// through promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mediafeed"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: gin route template (e.g. "/posts/:id"), "unmatched" for 404s
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts persisted posts.
// Label:
//   - file_type: "photo", "video" or "file"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by file type.",
	},
	[]string{"file_type"},
)

// PostsDeletedTotal counts removed posts.
var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted.",
	},
)

// UploadFailuresTotal counts failed interactions with the upload gateway.
// Label:
//   - reason: "gateway_error", "invalid_post", "persist_failed"
var UploadFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_failures_total",
		Help:      "Total number of uploads that did not produce a post.",
	},
	[]string{"reason"},
)

// UploadedBytes observes payload sizes accepted by the upload endpoint.
var UploadedBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of uploaded payloads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KiB .. 256MiB
	},
)

// FeedSubscribers tracks open live-feed websocket connections.
var FeedSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscribers",
		Help:      "Current number of connected live feed clients.",
	},
)
