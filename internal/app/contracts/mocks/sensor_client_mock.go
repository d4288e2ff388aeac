package mocks

import (
	"context"
	"esperanza-kiosk/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type MockSensorClient struct {
	mock.Mock
}

func (m *MockSensorClient) FetchWeight(ctx context.Context) (*models.SensorReading, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*models.SensorReading)
	return result, args.Error(1)
}

func (m *MockSensorClient) FetchHeight(ctx context.Context) (*models.SensorReading, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*models.SensorReading)
	return result, args.Error(1)
}

func (m *MockSensorClient) FetchHeartRate(ctx context.Context) (*models.SensorReading, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*models.SensorReading)
	return result, args.Error(1)
}

func (m *MockSensorClient) FetchTemperature(ctx context.Context) (*models.SensorReading, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*models.SensorReading)
	return result, args.Error(1)
}
