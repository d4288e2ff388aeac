package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
	CONTEXT_KIOSK_SESSION_KEY        ContextKey = "kiosk_session"
)

const (
	REQUEST_ID_PREFIX = "ESPRZ_KIOSK_"
)

const (
	KioskRolePatient = "patient"
	KioskRoleStaff   = "staff"
)

const (
	SessionCookieName  = "kiosk_session"
	SessionJWTClaimKey = "session_id"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

// Kiosk routes handed back to the front end as "next".
const (
	RouteLogin             = "/login"
	RouteStaff             = "/staff"
	RouteRecords           = "/records"
	RouteQueue             = "/queue"
	RouteWizardSummary     = "/vitals"
	RouteWizardWeight      = "/vitals/weight"
	RouteWizardHeight      = "/vitals/height"
	RouteWizardPulse       = "/vitals/pulse"
	RouteWizardTemperature = "/vitals/temperature"
	RouteWizardBP          = "/vitals/bp"
)

// Wizard step slugs as they appear in API paths.
const (
	StepWeight        = "weight"
	StepHeight        = "height"
	StepPulse         = "pulse"
	StepTemperature   = "temperature"
	StepBloodPressure = "blood-pressure"
)

// Display placeholders.
const (
	PlaceholderMissingValue = "—"
	PlaceholderQueueNumber  = "---"
)

// Redis key layouts
const (
	RedisKeyKioskSession    = "kiosk:session:%s"
	RedisKeyPriorityCounter = "kiosk:session:%s:priority_counter"
	RedisKeyLatestVitals    = "kiosk:latest_vitals:%s"
	RedisKeyQueueBoard      = "kiosk:queue_board"
	RedisKeyRateLimit       = "ratelimit:%s:%s:%d"
	RedisKeyQueueBoardLock  = "kiosk:queue_board:lock"
)
