package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records per-request counters and latencies for the /metrics
// endpoint.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	uploads  prometheus.Counter
	exports  *prometheus.CounterVec
}

// NewMetrics registers the application metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetpulse_http_requests_total",
			Help: "HTTP requests by method, path pattern, and status code.",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetpulse_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		uploads: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetpulse_workbook_uploads_total",
			Help: "Workbooks accepted for processing.",
		}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetpulse_report_exports_total",
			Help: "Report exports by format.",
		}, []string{"format"}),
	}
}

// Handler is the instrumentation middleware.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		m.duration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// CountUpload records an accepted workbook upload.
func (m *Metrics) CountUpload() {
	m.uploads.Inc()
}

// CountExport records a report export in the given format.
func (m *Metrics) CountExport(format string) {
	m.exports.WithLabelValues(format).Inc()
}
