package controllers

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QueueController struct {
	Log            *zap.Logger
	QueueUsecase   contracts.QueueUsecase
	InternalConfig *config.InternalConfig
}

func NewQueueController(logger *zap.Logger, queueUsecase contracts.QueueUsecase, internalConfig *config.InternalConfig) *QueueController {
	return &QueueController{
		Log:            logger,
		QueueUsecase:   queueUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *QueueController) GetBoard(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.QueueUsecase.GetBoard(ctx)
	if err != nil {
		ctrl.Log.Error("QueueController.GetBoard error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetQueueBoardSuccessMessage, result)
}

func (ctrl *QueueController) MarkComplete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	queueID := chi.URLParam(r, constvars.URLParamQueueID)
	ctrl.Log.Info("QueueController.MarkComplete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueIDKey, queueID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.QueueUsecase.MarkComplete(ctx, queueID)
	if err != nil {
		ctrl.Log.Error("QueueController.MarkComplete error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueIDKey, queueID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkQueueCompleteSuccessMessage, result)
}

func (ctrl *QueueController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.Backend.RequestTimeoutInSecs) * time.Second
}
