package config

type InternalConfig struct {
	App        App        `mapstructure:"app"`
	Backend    AppBackend `mapstructure:"backend"`
	Session    AppSession `mapstructure:"session"`
	QueueBoard AppQueue   `mapstructure:"queue_board"`
	Sensor     AppSensor  `mapstructure:"sensor"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	FrontendDomain             string `mapstructure:"frontend_domain"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
}

// AppBackend points at the clinic backend that owns patients, vitals, queue and printing.
type AppBackend struct {
	BaseUrl              string `mapstructure:"base_url"`
	SensorBaseUrl        string `mapstructure:"sensor_base_url"`
	RequestTimeoutInSecs int    `mapstructure:"request_timeout_in_seconds"`
	SensorTimeoutInSecs  int    `mapstructure:"sensor_timeout_in_seconds"`
}

type AppSession struct {
	Secret                 string `mapstructure:"secret"`
	IdleTTLInMinutes       int    `mapstructure:"idle_ttl_in_minutes"`
	LatestVitalsTTLInHours int    `mapstructure:"latest_vitals_ttl_in_hours"`
	CookieSecure           bool   `mapstructure:"cookie_secure"`
	UpdateMaxRetries       int    `mapstructure:"update_max_retries"`
	MaxLifetimeInHours     int    `mapstructure:"max_lifetime_in_hours"`
	LoginMaxAttempts       int    `mapstructure:"login_max_attempts"`
	LoginWindowInSeconds   int    `mapstructure:"login_window_in_seconds"`
}

// AppQueue controls the queue board poller and the summary queue lookup.
type AppQueue struct {
	PollIntervalInSeconds  int `mapstructure:"poll_interval_in_seconds"`
	LookupAttempts         int `mapstructure:"lookup_attempts"`
	LookupIntervalInMillis int `mapstructure:"lookup_interval_in_millis"`
	CacheTTLInSeconds      int `mapstructure:"cache_ttl_in_seconds"`
}

type AppSensor struct {
	RatePerMinute int `mapstructure:"rate_per_minute"`
	Burst         int `mapstructure:"burst"`
}
