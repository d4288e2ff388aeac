package middlewares

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per client IP token bucket. It guards the sensor start
// endpoints, which drive physical hardware.
type RateLimiter struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	every    time.Duration
	burst    int
	idleTTL  time.Duration
	log      *zap.Logger
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute, burst int, logger *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		every:    time.Minute / time.Duration(perMinute),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		log:      logger,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.GetClientIP(r)
		reservation := rl.limiterFor(ip).Reserve()
		delay := reservation.Delay()
		if !reservation.OK() || delay > 0 {
			reservation.Cancel()
			rl.log.Warn("RateLimiter.Limit sensor request throttled",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(delay.Seconds())+1))
			utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(fmt.Errorf("sensor limit exceeded for %s", ip)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, client := range rl.limiters {
		if now.Sub(client.lastSeen) > rl.idleTTL {
			delete(rl.limiters, key)
		}
	}

	client, exists := rl.limiters[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Every(rl.every), rl.burst)}
		rl.limiters[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}
