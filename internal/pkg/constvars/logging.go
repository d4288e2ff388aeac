package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingSessionIDKey     = "session_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingVitalIDKey       = "vital_id"
	LoggingQueueIDKey       = "queue_id"
	LoggingStepKey          = "step"
	LoggingGenerationKey    = "generation"
	LoggingEndpointKey      = "endpoint"
	LoggingMethodKey        = "method"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingErrorTypeKey     = "error_type"
	LoggingErrorCodeKey     = "error_code"
	LoggingErrorMessageKey  = "error_message"
	LoggingOperationKey     = "operation"
	LoggingRedisKey         = "redis_key"
	LoggingRoleKey          = "role"
	LoggingReasonsKey       = "reasons"
	LoggingPriorityKey      = "priority"
	LoggingPriorityCodeKey  = "priority_code"
	LoggingQueueNumberKey   = "queue_number"
	LoggingAttemptKey       = "attempt"
	LoggingBackendPathKey   = "backend_path"
	LoggingResponseCountKey = "response_count"
	LoggingLockValueKey     = "lock_value"
	LoggingLockTTLKey       = "lock_ttl"
)

const (
	LoggingBusinessEventKey = "business_event"
	LoggingTimestampKey     = "timestamp"

	EventQueueSubmitted  = "queue_submitted"
	EventReceiptPrinted  = "receipt_printed"
	EventVisitFinished   = "visit_finished"
	EventPatientUpdated  = "patient_updated"
	EventStaffVitalsSent = "staff_vitals_recorded"
)
