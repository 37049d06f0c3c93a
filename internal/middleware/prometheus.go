package middleware

import (
	"net/http"
	"time"

	"github.com/mahad1921/DineSight/internal/metrics"
)

// Prometheus records request duration and count for each request. Profile and
// dining-hall paths carry numeric ids; RecordRequest collapses them to {id} so
// label cardinality stays bounded by the route table, not the user table.
// Scrapes of /metrics and /health checks are not recorded.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		statusW := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(statusW, r)
		if r.URL.Path == "/metrics" || r.URL.Path == "/health" {
			return
		}
		duration := time.Since(start).Seconds()
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		metrics.RecordRequest(r.Method, path, statusW.status, duration)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
