package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trampo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "trampo",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Payment metrics
	checkoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "payments",
			Name:      "checkout_sessions_total",
			Help:      "Checkout sessions created, by purchase type and outcome",
		},
		[]string{"purchase_type", "status"},
	)

	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "payments",
			Name:      "webhook_events_total",
			Help:      "Webhook deliveries by purchase type and outcome",
		},
		[]string{"purchase_type", "outcome"},
	)

	// Notification metrics
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "email",
			Name:      "sent_total",
			Help:      "Transactional emails by template and status",
		},
		[]string{"template", "status"},
	)

	// Rate limiting
	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "ratelimit",
			Name:      "rejected_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"store"},
	)

	// Maintenance
	paymentEventsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trampo",
			Subsystem: "maintenance",
			Name:      "payment_events_purged_total",
			Help:      "Processed payment events removed by retention",
		},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trampo",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCheckout records a checkout session attempt
func RecordCheckout(purchaseType, status string) {
	checkoutSessionsTotal.WithLabelValues(purchaseType, status).Inc()
}

// RecordWebhook records the outcome of a webhook delivery
func RecordWebhook(purchaseType, outcome string) {
	webhookEventsTotal.WithLabelValues(purchaseType, outcome).Inc()
}

// RecordEmail records a transactional email attempt
func RecordEmail(template, status string) {
	emailsSentTotal.WithLabelValues(template, status).Inc()
}

// RecordRateLimited records a rejected request
func RecordRateLimited(store string) {
	rateLimitedTotal.WithLabelValues(store).Inc()
}

// AddPaymentEventsPurged adds to the retention purge counter
func AddPaymentEventsPurged(n int64) {
	paymentEventsPurged.Add(float64(n))
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
