package middlewares

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access log line per request.
func (m *Middlewares) RequestLogger(next http.Handler) http.Handler {
	tz, err := time.LoadLocation(m.InternalConfig.App.Timezone)
	if err != nil {
		m.AccessLog.Printf("Invalid time zone: %v", err)
		tz = time.UTC
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.AccessLog.WithFields(logrus.Fields{
			"time":        time.Now().In(tz).Format(time.RFC850),
			"remote_addr": r.RemoteAddr,
			"method":      r.Method,
			"uri":         r.RequestURI,
			"status":      rec.statusCode,
			"duration":    time.Since(start).String(),
		}).Info("access")
	})
}
