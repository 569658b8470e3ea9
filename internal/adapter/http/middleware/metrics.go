package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okosach/bankd/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// routeWords are the fixed path segments of the API. Anything else is an
// identifier and gets collapsed to keep label cardinality bounded.
var routeWords = map[string]struct{}{
	"api": {}, "v1": {},
	"health": {}, "ready": {}, "metrics": {},
	"auth": {}, "register": {}, "login": {}, "me": {},
	"accounts": {}, "number": {}, "suspend": {}, "activate": {}, "status": {},
	"transactions": {}, "deposit": {}, "withdraw": {}, "transfer": {}, "to": {}, "reference": {},
	"ledger": {}, "consistency": {},
}

func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, ok := routeWords[segment]; !ok {
			segments[i] = ":id"
		}
	}

	return strings.Join(segments, "/")
}
