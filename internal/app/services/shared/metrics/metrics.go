package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultReady   = "ready"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_http_requests_total",
			Help: "Total number of HTTP requests served by the kiosk",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kiosk_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kiosk_backend_request_duration_seconds",
			Help:    "Duration of calls to the clinic backend and sensor bridge",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status_code"},
	)

	// Acquisition outcomes per wizard step: ready, failed or dropped.
	acquisitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_wizard_acquisitions_total",
			Help: "Sensor acquisitions by step and outcome",
		},
		[]string{"step", "result"},
	)

	vitalsSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_wizard_vitals_saves_total",
			Help: "Vitals upserts to the backend by step and outcome",
		},
		[]string{"step", "result"},
	)

	queueSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_queue_submissions_total",
			Help: "Queue add_or_update submissions by outcome",
		},
		[]string{"result"},
	)

	triageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_triage_classifications_total",
			Help: "Triage classifications by priority",
		},
		[]string{"priority"},
	)

	queueBoardRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_queue_board_refresh_total",
			Help: "Queue board poller refreshes by outcome",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		backendRequestDuration,
		acquisitionsTotal,
		vitalsSavesTotal,
		queueSubmissionsTotal,
		triageTotal,
		queueBoardRefreshTotal,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBackendRequest records one outbound call. statusCode 0 means the
// request never got a response.
func ObserveBackendRequest(method, path string, statusCode int, duration time.Duration) {
	backendRequestDuration.WithLabelValues(method, path, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

func RecordAcquisition(step, result string) {
	acquisitionsTotal.WithLabelValues(step, result).Inc()
}

func RecordVitalsSave(step string, err error) {
	vitalsSavesTotal.WithLabelValues(step, resultOf(err)).Inc()
}

func RecordQueueSubmission(err error) {
	queueSubmissionsTotal.WithLabelValues(resultOf(err)).Inc()
}

func RecordTriage(priority string) {
	triageTotal.WithLabelValues(priority).Inc()
}

func RecordQueueBoardRefresh(err error) {
	queueBoardRefreshTotal.WithLabelValues(resultOf(err)).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
