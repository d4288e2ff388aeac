package controllers

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type SummaryController struct {
	Log            *zap.Logger
	SummaryUsecase contracts.SummaryUsecase
	InternalConfig *config.InternalConfig
}

func NewSummaryController(logger *zap.Logger, summaryUsecase contracts.SummaryUsecase, internalConfig *config.InternalConfig) *SummaryController {
	return &SummaryController{
		Log:            logger,
		SummaryUsecase: summaryUsecase,
		InternalConfig: internalConfig,
	}
}

// GetSummary may submit to the queue and then poll it, so the deadline covers
// the submission plus every lookup attempt.
func (ctrl *SummaryController) GetSummary(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())
	ctrl.Log.Info("SummaryController.GetSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	queueConfig := ctrl.InternalConfig.QueueBoard
	lookup := time.Duration(queueConfig.LookupAttempts) * (time.Duration(queueConfig.LookupIntervalInMillis)*time.Millisecond + ctrl.requestTimeout())
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout()+lookup)
	defer cancel()

	result, err := ctrl.SummaryUsecase.GetSummary(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("SummaryController.GetSummary error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSummarySuccessMessage, result)
}

func (ctrl *SummaryController) Print(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.SummaryUsecase.Print(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("SummaryController.Print error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PrintSummarySuccessMessage, result)
}

func (ctrl *SummaryController) Finish(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.SummaryUsecase.Finish(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("SummaryController.Finish error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FinishWizardSuccessMessage, result)
}

func (ctrl *SummaryController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.Backend.RequestTimeoutInSecs) * time.Second
}
