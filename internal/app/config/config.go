package config

import (
	"esperanza-kiosk/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			AccessLogFormat:     utils.GetEnvString("LOGGER_ACCESS_LOG_FORMAT", "text"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Manila"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Backend: AppBackend{
			BaseUrl:              utils.GetEnvString("BACKEND_BASE_URL", "http://localhost:8000/api"),
			SensorBaseUrl:        utils.GetEnvString("SENSOR_BASE_URL", "http://localhost:8000/api"),
			RequestTimeoutInSecs: utils.GetEnvInt("BACKEND_TIMEOUT_IN_SECONDS", 10),
			SensorTimeoutInSecs:  utils.GetEnvInt("SENSOR_TIMEOUT_IN_SECONDS", 30),
		},
		Session: AppSession{
			Secret:                 utils.GetEnvString("SESSION_SECRET", "kiosk-session-secret"),
			IdleTTLInMinutes:       utils.GetEnvInt("SESSION_IDLE_TTL_IN_MINUTES", 30),
			LatestVitalsTTLInHours: utils.GetEnvInt("LATEST_VITALS_TTL_IN_HOURS", 24),
			CookieSecure:           utils.GetEnvBool("SESSION_COOKIE_SECURE", false),
			UpdateMaxRetries:       utils.GetEnvInt("SESSION_UPDATE_MAX_RETRIES", 5),
			MaxLifetimeInHours:     utils.GetEnvInt("SESSION_MAX_LIFETIME_IN_HOURS", 12),
			LoginMaxAttempts:       utils.GetEnvInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginWindowInSeconds:   utils.GetEnvInt("LOGIN_WINDOW_IN_SECONDS", 300),
		},
		QueueBoard: AppQueue{
			PollIntervalInSeconds:  utils.GetEnvInt("QUEUE_POLL_INTERVAL_IN_SECONDS", 10),
			LookupAttempts:         utils.GetEnvInt("QUEUE_LOOKUP_ATTEMPTS", 3),
			LookupIntervalInMillis: utils.GetEnvInt("QUEUE_LOOKUP_INTERVAL_IN_MILLIS", 500),
			CacheTTLInSeconds:      utils.GetEnvInt("QUEUE_CACHE_TTL_IN_SECONDS", 30),
		},
		Sensor: AppSensor{
			RatePerMinute: utils.GetEnvInt("SENSOR_RATE_PER_MINUTE", 20),
			Burst:         utils.GetEnvInt("SENSOR_RATE_BURST", 5),
		},
	}
}
