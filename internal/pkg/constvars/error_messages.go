package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"alphanum":   "must contain only alphanumeric characters",
	"min":        "must be at least %s",
	"max":        "must be at most %s",
	"numeric":    "must be a number",
	"len":        "must be %s characters long",
	"oneof":      "must be one of [%s]",
	"gte":        "must be greater than or equal to %s",
	"lte":        "must be less than or equal to %s",
	"pin":        "must be exactly 4 digits",
	"contact":    "contact number must be exactly 11 digits",
	"login_type": "must be either patient or staff",
	"sex":        "must be either Male or Female",
	"not_future": "birthdate cannot be in the future",
	"datetime":   "must be a date formatted as YYYY-MM-DD",
}

// Tags that need a param substituted into the message
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
	"gte":   true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientPatientIdentityMissing        = "no patient is signed in for this visit, please login again"
	ErrClientInvalidPIN                    = "invalid username or PIN"
	ErrClientRegistrationFailed            = "failed to register patient"
	ErrClientPatientUpdateFailed           = "failed to update patient"
	ErrClientNothingToUpdate               = "no patient fields to update"
	ErrClientStaffVitalsFailed             = "failed to save blood pressure"
	ErrClientInvalidBloodPressure          = "blood pressure must look like 120/80"
	ErrClientUnknownStep                   = "unknown vitals step"
	ErrClientStepHasNoSensor               = "this step is entered manually"
	ErrClientStepAlreadyAcquiring          = "a measurement is already in progress"
	ErrClientStepNotReady                  = "there is no reading to save yet"
	ErrClientBackendUnavailable            = "the clinic server is unavailable, please try again"
	ErrClientPrintFailed                   = "failed to print the receipt"
	ErrClientTooManyRequests               = "too many requests, please wait a moment"
	ErrClientQueueEntryNotFound            = "queue entry not found"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process request"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevSessionTokenMissing        = "session token missing"
	ErrDevSessionTokenInvalid        = "session token invalid or expired"
	ErrDevSessionNotFound            = "kiosk session not found in store"
	ErrDevSessionConflict            = "kiosk session changed concurrently, retries exhausted"
	ErrDevRoleMismatch               = "role does not match required role"
	ErrDevPatientIdentityMissing     = "patient id missing from kiosk session"
	ErrDevUnknownStep                = "unknown wizard step %s"
	ErrDevStepHasNoSensor            = "wizard step %s has no sensor acquisition"
	ErrDevStepAlreadyAcquiring       = "wizard step %s is already acquiring"
	ErrDevStepNotReady               = "wizard step %s has no reading to save"
	ErrDevBackendRequest             = "backend request to %s failed"
	ErrDevBackendResponse            = "backend %s responded with status %d"
	ErrDevBackendDecode              = "cannot decode backend response from %s"
	ErrDevSensorRequest              = "sensor request to %s failed"
	ErrDevPrintRejected              = "backend rejected print request"
	ErrDevQueueEntryNotFound         = "queue entry %s not found"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisGetNoData             = "failed to get data from redis with key %s"
	ErrDevRedisSetData               = "failed to set data in redis"
	ErrDevRedisDeleteData            = "failed to delete data in redis"
	ErrDevRedisIncrementValue        = "failed to increment value in redis"
	ErrDevRedisTransaction           = "redis transaction failed"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevSessionTokenGenerate       = "failed to sign session token"
	ErrDevBuildSpreadsheet           = "failed to build records spreadsheet"
	ErrDevInvalidBloodPressureFormat = "invalid blood pressure format"
)
