package controllers

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type HealthController struct {
	Log            *zap.Logger
	Redis          *redis.Client
	InternalConfig *config.InternalConfig
}

type healthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Redis   string `json:"redis"`
}

func NewHealthController(logger *zap.Logger, redisClient *redis.Client, internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{
		Log:            logger,
		Redis:          redisClient,
		InternalConfig: internalConfig,
	}
}

// Healthz reports unavailable when Redis, which holds every kiosk session, is down.
func (ctrl *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := ctrl.Redis.Ping(ctx).Err(); err != nil {
		ctrl.Log.Error("HealthController.Healthz redis ping failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, &healthStatus{
		Status:  "ok",
		Version: ctrl.InternalConfig.App.Version,
		Redis:   "ok",
	})
}
