package middlewares

import (
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimiter limits every client IP to App.MaxRequests per second.
func (m *Middlewares) GlobalRateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(fmt.Errorf("global limit exceeded for %s", utils.GetClientIP(r))))
		}),
	)
}
