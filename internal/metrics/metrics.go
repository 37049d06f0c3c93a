package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// CheckInsTotal counts check-in mutations by kind (created, cleared).
	CheckInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Total number of check-in mutations by kind",
		},
		[]string{"kind"},
	)

	// FollowsTotal counts follow graph mutations by kind (follow, unfollow).
	FollowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follows_total",
			Help: "Total number of follow graph mutations by kind",
		},
		[]string{"kind"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, CheckInsTotal, FollowsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /user/123 -> /user/{id}, /dining/4 -> /dining/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncCheckIns increments the check-in counter for the given kind (created, cleared).
func IncCheckIns(kind string) {
	CheckInsTotal.WithLabelValues(kind).Inc()
}

// IncFollows increments the follow counter for the given kind (follow, unfollow).
func IncFollows(kind string) {
	FollowsTotal.WithLabelValues(kind).Inc()
}
