package telemetry

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myhair_api_requests_total",
		Help: "Backend API calls by method, endpoint and status class",
	}, []string{"method", "endpoint", "status"})

	apiLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "myhair_api_request_duration_seconds",
		Help:    "Backend API call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	sessionResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myhair_session_resolutions_total",
		Help: "Session changes by cause and outcome",
	}, []string{"cause", "outcome"})

	staleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "myhair_session_stale_responses_total",
		Help: "Session check results discarded because a newer change won",
	})

	navigations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myhair_navigations_total",
		Help: "Page transitions by target page",
	}, []string{"page"})
)

// TrackAPIRequest records one backend call. status is the HTTP status code,
// or 0 when the request never completed.
func TrackAPIRequest(method, endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = fmt.Sprintf("%dxx", status/100)
	}
	apiRequests.WithLabelValues(method, endpoint, label).Inc()
	apiLatency.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// TrackSessionResolution records a session state change.
func TrackSessionResolution(cause, outcome string) {
	sessionResolutions.WithLabelValues(cause, outcome).Inc()
}

// TrackStaleResponse records a discarded session check.
func TrackStaleResponse() {
	staleResponses.Inc()
}

// TrackNavigation records a page transition.
func TrackNavigation(page string) {
	navigations.WithLabelValues(page).Inc()
}

var (
	metricsMu      sync.Mutex
	metricsRunning bool
)

// StartMetricsServer exposes /metrics on the given port. It blocks while the
// server runs and returns nil right away if one is already running.
func StartMetricsServer(port int) error {
	metricsMu.Lock()
	if metricsRunning {
		metricsMu.Unlock()
		return nil
	}
	metricsRunning = true
	metricsMu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	LogInfo("Starting metrics server", "addr", srv.Addr)
	err := srv.ListenAndServe()

	metricsMu.Lock()
	metricsRunning = false
	metricsMu.Unlock()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
