package exceptions

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"fmt"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatAllValidationErrors(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}

	// Session
	ErrSessionTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevSessionTokenMissing).WithNext(constvars.RouteLogin)
	}
	ErrSessionTokenInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevSessionTokenInvalid).WithNext(constvars.RouteLogin)
	}
	ErrSessionTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSessionTokenGenerate)
	}
	ErrSessionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevSessionNotFound).WithNext(constvars.RouteLogin)
	}
	ErrSessionConflict = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSessionConflict)
	}
	ErrNotMatchRoleType = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevRoleMismatch)
	}
	ErrPatientIdentityMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientPatientIdentityMissing, constvars.ErrDevPatientIdentityMissing).WithNext(constvars.RouteLogin)
	}

	// Auth
	ErrInvalidCredentials = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientInvalidPIN
		}
		return BuildNewCustomError(err, constvars.StatusUnauthorized, clientMessage, constvars.ErrClientInvalidPIN)
	}
	ErrRegistrationRejected = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientRegistrationFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadRequest, clientMessage, constvars.ErrClientRegistrationFailed)
	}

	ErrPatientUpdateRejected = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientPatientUpdateFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadRequest, clientMessage, constvars.ErrClientPatientUpdateFailed)
	}
	ErrNothingToUpdate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientNothingToUpdate, constvars.ErrDevInvalidInput)
	}
	ErrStaffVitalsRejected = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientStaffVitalsFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadRequest, clientMessage, constvars.ErrClientStaffVitalsFailed)
	}

	// Wizard
	ErrUnknownStep = func(err error, step string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientUnknownStep, fmt.Sprintf(constvars.ErrDevUnknownStep, step))
	}
	ErrStepHasNoSensor = func(err error, step string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientStepHasNoSensor, fmt.Sprintf(constvars.ErrDevStepHasNoSensor, step))
	}
	ErrStepBusy = func(err error, step string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientStepAlreadyAcquiring, fmt.Sprintf(constvars.ErrDevStepAlreadyAcquiring, step))
	}
	ErrStepNotReady = func(err error, step string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientStepNotReady, fmt.Sprintf(constvars.ErrDevStepNotReady, step))
	}
	ErrInvalidBloodPressure = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidBloodPressure, constvars.ErrDevInvalidBloodPressureFormat)
	}

	// Backend
	ErrBackendRequest = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientBackendUnavailable, fmt.Sprintf(constvars.ErrDevBackendRequest, path))
	}
	ErrBackendResponse = func(err error, path string, status int, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientBackendUnavailable
		}
		return BuildNewCustomError(err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevBackendResponse, path, status))
	}
	ErrBackendDecode = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientBackendUnavailable, fmt.Sprintf(constvars.ErrDevBackendDecode, path))
	}
	ErrSensorRequest = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientBackendUnavailable, fmt.Sprintf(constvars.ErrDevSensorRequest, path))
	}
	ErrPrintRejected = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientPrintFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadGateway, clientMessage, constvars.ErrDevPrintRejected)
	}
	ErrQueueEntryNotFound = func(err error, queueID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientQueueEntryNotFound, fmt.Sprintf(constvars.ErrDevQueueEntryNotFound, queueID))
	}

	// Records
	ErrBuildSpreadsheet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBuildSpreadsheet)
	}

	// Redis
	ErrRedisGetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisGetNoData = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, key))
	}
	ErrRedisSetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDeleteData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisIncrementValue = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrementValue)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisTransaction = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisTransaction)
	}
)
