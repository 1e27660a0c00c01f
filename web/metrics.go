// ABOUTME: Prometheus metrics for the web server
// ABOUTME: Request counters and latencies per route plus copilot and widget activity
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialpulse_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialpulse_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	copilotMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialpulse_copilot_messages_total",
			Help: "Total number of copilot chat messages by role",
		},
		[]string{"role"},
	)

	copilotSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "socialpulse_copilot_sessions_active",
			Help: "Number of open copilot websocket sessions",
		},
	)

	widgetChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialpulse_widget_changes_total",
			Help: "Total number of dashboard widget changes by action",
		},
		[]string{"action"},
	)
)

// instrument records request metrics keyed by the matched chi route pattern
// and logs each request.
func instrument(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
