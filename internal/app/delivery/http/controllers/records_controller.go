package controllers

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const exportTimeout = time.Minute

type RecordsController struct {
	Log            *zap.Logger
	RecordsUsecase contracts.RecordsUsecase
	InternalConfig *config.InternalConfig
}

func NewRecordsController(logger *zap.Logger, recordsUsecase contracts.RecordsUsecase, internalConfig *config.InternalConfig) *RecordsController {
	return &RecordsController{
		Log:            logger,
		RecordsUsecase: recordsUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *RecordsController) GetRecords(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.GetRecords(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("RecordsController.GetRecords error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRecordsSuccessMessage, result)
}

func (ctrl *RecordsController) GetStaffDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	sessionID := utils.GetSessionID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.GetStaffDashboard(ctx, sessionID)
	if err != nil {
		ctrl.Log.Error("RecordsController.GetStaffDashboard error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStaffDashboardSuccessMessage, result)
}

func (ctrl *RecordsController) SearchPatients(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	search, err := searchQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.SearchPatients(ctx, search)
	if err != nil {
		ctrl.Log.Error("RecordsController.SearchPatients error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, result)
}

func (ctrl *RecordsController) GetPatientVitals(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 2*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.GetPatientVitals(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("RecordsController.GetPatientVitals error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientVitalsSuccessMessage, result)
}

func (ctrl *RecordsController) ExportPatients(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("RecordsController.ExportPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	search, err := searchQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()

	content, err := ctrl.RecordsUsecase.ExportPatients(ctx, search)
	if err != nil {
		ctrl.Log.Error("RecordsController.ExportPatients error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	fileName := fmt.Sprintf("patients-%s.xlsx", time.Now().Format("20060102-150405"))
	utils.BuildFileResponse(w, fileName, constvars.MIMEApplicationXLSX, content)
}

func (ctrl *RecordsController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	request := new(requests.UpdatePatient)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("RecordsController.UpdatePatient error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeUpdatePatientRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.UpdatePatient(ctx, patientID, request)
	if err != nil {
		ctrl.Log.Error("RecordsController.UpdatePatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientSuccessMessage, result)
}

func (ctrl *RecordsController) AddPatientVitals(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	request := new(requests.StaffVitals)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("RecordsController.AddPatientVitals error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeStaffVitalsRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// one save plus the history reload
	ctx, cancel := context.WithTimeout(r.Context(), 3*ctrl.requestTimeout())
	defer cancel()

	result, err := ctrl.RecordsUsecase.AddPatientVitals(ctx, patientID, request)
	if err != nil {
		ctrl.Log.Error("RecordsController.AddPatientVitals error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddPatientVitalsSuccessMessage, result)
}

func (ctrl *RecordsController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.Backend.RequestTimeoutInSecs) * time.Second
}

func searchQuery(r *http.Request) (string, error) {
	request := &requests.PatientSearch{Search: strings.TrimSpace(r.URL.Query().Get(constvars.QueryParamSearch))}
	if err := utils.ValidateStruct(request); err != nil {
		return "", exceptions.ErrInputValidation(err)
	}
	return request.Search, nil
}
