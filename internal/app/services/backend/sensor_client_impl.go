package backend

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	sensorClientInstance contracts.SensorClient
	onceSensorClient     sync.Once
)

type sensorClient struct {
	client *resty.Client
	Log    *zap.Logger
}

func NewSensorClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.SensorClient {
	onceSensorClient.Do(func() {
		timeout := time.Duration(internalConfig.Backend.SensorTimeoutInSecs) * time.Second
		sensorClientInstance = newSensorClient(internalConfig.Backend.SensorBaseUrl, timeout, logger)
	})
	return sensorClientInstance
}

func newSensorClient(baseURL string, timeout time.Duration, logger *zap.Logger) *sensorClient {
	return &sensorClient{
		client: newRestyClient(baseURL, timeout),
		Log:    logger,
	}
}

// fetch triggers one measurement. A device-side failure comes back as a
// reading with Error set; only transport failures are returned as errors.
func (c *sensorClient) fetch(ctx context.Context, path string) (*models.SensorReading, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("sensorClient.fetch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBackendPathKey, path),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, path, nil, nil)
	if err != nil {
		c.Log.Error("sensorClient.fetch error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBackendPathKey, path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSensorRequest(err, path)
	}

	var body sensorResponse
	decodeErr := json.Unmarshal(response.Body(), &body)

	if !isSuccess(response) {
		message := extractErrorMessage(response.Body())
		c.Log.Warn("sensorClient.fetch device reported failure",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBackendPathKey, path),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return &models.SensorReading{Error: message}, nil
	}
	if decodeErr != nil {
		return nil, exceptions.ErrBackendDecode(decodeErr, path)
	}

	reading := &models.SensorReading{
		Weight:      firstFloat(body.Weight, body.WeightKg),
		Height:      firstFloat(body.Height, body.HeightCm),
		HeartRate:   firstFloat(body.HeartRate, body.HR, body.PulseRate),
		SpO2:        firstFloat(body.SpO2, body.OxygenSaturation),
		Temperature: firstFloat(body.Temperature, body.Temp),
		Error:       body.Error,
	}
	return reading, nil
}

func (c *sensorClient) FetchWeight(ctx context.Context) (*models.SensorReading, error) {
	return c.fetch(ctx, constvars.SensorFetchWeight)
}

func (c *sensorClient) FetchHeight(ctx context.Context) (*models.SensorReading, error) {
	return c.fetch(ctx, constvars.SensorFetchHeight)
}

// FetchHeartRate returns heart rate and SpO2 from the same oximeter reading.
func (c *sensorClient) FetchHeartRate(ctx context.Context) (*models.SensorReading, error) {
	return c.fetch(ctx, constvars.SensorFetchHeartRate)
}

func (c *sensorClient) FetchTemperature(ctx context.Context) (*models.SensorReading, error) {
	reading, err := c.fetch(ctx, constvars.SensorFetchTemperature)
	if err != nil {
		return nil, err
	}
	if reading.Temperature != nil {
		rounded := utils.RoundTo(*reading.Temperature, 1)
		reading.Temperature = &rounded
	}
	return reading, nil
}
