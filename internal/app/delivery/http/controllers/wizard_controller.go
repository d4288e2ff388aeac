package controllers

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardController struct {
	Log            *zap.Logger
	WizardUsecase  contracts.WizardUsecase
	InternalConfig *config.InternalConfig
}

func NewWizardController(logger *zap.Logger, wizardUsecase contracts.WizardUsecase, internalConfig *config.InternalConfig) *WizardController {
	return &WizardController{
		Log:            logger,
		WizardUsecase:  wizardUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *WizardController) GetOverview(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.WizardUsecase.GetOverview(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("WizardController.GetOverview error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWizardSuccessMessage, result)
}

func (ctrl *WizardController) GetStep(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())
	step := chi.URLParam(r, constvars.URLParamStep)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.WizardUsecase.GetStep(ctx, sessionID, step)
	if err != nil {
		ctrl.Log.Error("WizardController.GetStep error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWizardStepSuccessMessage, result)
}

// StartStep blocks for the whole measurement, so its deadline covers the
// sensor call plus the backend save that follows a good reading.
func (ctrl *WizardController) StartStep(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())
	step := chi.URLParam(r, constvars.URLParamStep)
	ctrl.Log.Info("WizardController.StartStep called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingStepKey, step),
	)

	timeout := time.Duration(ctrl.InternalConfig.Backend.SensorTimeoutInSecs)*time.Second + 2*ctrl.requestTimeout()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := ctrl.WizardUsecase.StartStep(ctx, sessionID, step)
	if err != nil {
		ctrl.Log.Error("WizardController.StartStep error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.StartWizardStepSuccessMessage, result)
}

func (ctrl *WizardController) SubmitBloodPressure(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	request := new(requests.SubmitBloodPressure)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("WizardController.SubmitBloodPressure error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.WizardUsecase.SubmitBloodPressure(ctx, sessionID, request)
	if err != nil {
		ctrl.Log.Error("WizardController.SubmitBloodPressure error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitBloodPressureSuccess, result)
}

func (ctrl *WizardController) RetrySave(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())
	step := chi.URLParam(r, constvars.URLParamStep)

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.WizardUsecase.RetrySave(ctx, sessionID, step)
	if err != nil {
		ctrl.Log.Error("WizardController.RetrySave error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RetryWizardSaveSuccessMessage, result)
}

func (ctrl *WizardController) Continue(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())
	step := chi.URLParam(r, constvars.URLParamStep)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.WizardUsecase.Continue(ctx, sessionID, step)
	if err != nil {
		ctrl.Log.Error("WizardController.Continue error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ContinueWizardStepSuccessMessage, result)
}

func (ctrl *WizardController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.Backend.RequestTimeoutInSecs) * time.Second
}
