package constvars

// Clinic backend endpoints, relative to BACKEND_BASE_URL.
const (
	BackendLogin               = "/login/"
	BackendLogout              = "/logout/"
	BackendPatients            = "/patients/"
	BackendPatientDetail       = "/patients/%s/"
	BackendPatientVitals       = "/patient/vitals/%s/"
	BackendPatientAddVitals    = "/patients/%s/vitals/"
	BackendReceiveVitals       = "/receive-vitals/"
	BackendQueueAddOrUpdate    = "/queue/add_or_update/"
	BackendQueueCurrent        = "/queue/current_queue/"
	BackendQueueMarkComplete   = "/queue/%s/mark_complete/"
	BackendPrintVitalsAndQueue = "/print-vitals-and-queue/"
)

// Sensor endpoints, relative to SENSOR_BASE_URL.
const (
	SensorFetchWeight      = "/fetch_weight/"
	SensorFetchHeight      = "/fetch_height/"
	SensorFetchHeartRate   = "/fetch_heart_rate/"
	SensorFetchTemperature = "/fetch_temperature/"
)

const (
	PriorityNormal   = "NORMAL"
	PriorityPriority = "PRIORITY"
)

const (
	QueueStatusWaiting    = "waiting"
	QueueStatusInProgress = "in_progress"
	QueueStatusComplete   = "complete"
)
