package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSensor(t *testing.T, handler http.HandlerFunc) *sensorClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newSensorClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestSensorClient_FetchTemperatureRounds(t *testing.T) {
	client := newTestSensor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fetch_temperature/", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"temperature": 36.96}`)
	})

	reading, err := client.FetchTemperature(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Temperature)
	assert.Equal(t, 37.0, *reading.Temperature)
}

func TestSensorClient_FetchHeartRateReturnsBoth(t *testing.T) {
	client := newTestSensor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fetch_heart_rate/", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"heart_rate": "72", "spo2": 98}`)
	})

	reading, err := client.FetchHeartRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 72.0, *reading.HeartRate)
	assert.Equal(t, 98.0, *reading.SpO2)
}

func TestSensorClient_DeviceFailure(t *testing.T) {
	client := newTestSensor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":"Scale not responding"}`)
	})

	reading, err := client.FetchWeight(context.Background())
	require.NoError(t, err)
	assert.Nil(t, reading.Weight)
	assert.Equal(t, "Scale not responding", reading.Error)
}

func TestSensorClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newSensorClient(server.URL, time.Second, zap.NewNop())
	server.Close()

	_, err := client.FetchHeight(context.Background())
	requireCustomError(t, err)
}
