package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordVitalsSave(t *testing.T) {
	before := testutil.ToFloat64(vitalsSavesTotal.WithLabelValues("weight", ResultError))

	RecordVitalsSave("weight", assert.AnError)

	after := testutil.ToFloat64(vitalsSavesTotal.WithLabelValues("weight", ResultError))
	assert.Equal(t, before+1, after)
}

func TestRecordAcquisition(t *testing.T) {
	before := testutil.ToFloat64(acquisitionsTotal.WithLabelValues("pulse", ResultDropped))

	RecordAcquisition("pulse", ResultDropped)
	RecordAcquisition("pulse", ResultDropped)

	after := testutil.ToFloat64(acquisitionsTotal.WithLabelValues("pulse", ResultDropped))
	assert.Equal(t, before+2, after)
}

func TestHandlerExposesKioskMetrics(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/api/v1/queue", http.StatusOK, 15*time.Millisecond)
	RecordQueueSubmission(nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "kiosk_http_requests_total"))
	assert.True(t, strings.Contains(body, `kiosk_queue_submissions_total{result="success"}`))
}
