package mocks

import (
	"context"
	"esperanza-kiosk/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) Login(ctx context.Context, credentials *models.LoginCredentials) (*models.LoginResult, error) {
	args := m.Called(ctx, credentials)
	result, _ := args.Get(0).(*models.LoginResult)
	return result, args.Error(1)
}

func (m *MockBackendClient) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBackendClient) RegisterPatient(ctx context.Context, registration *models.PatientRegistration) (*models.PatientProfile, error) {
	args := m.Called(ctx, registration)
	result, _ := args.Get(0).(*models.PatientProfile)
	return result, args.Error(1)
}

func (m *MockBackendClient) GetPatient(ctx context.Context, patientID string) (*models.PatientProfile, error) {
	args := m.Called(ctx, patientID)
	result, _ := args.Get(0).(*models.PatientProfile)
	return result, args.Error(1)
}

func (m *MockBackendClient) SearchPatients(ctx context.Context, search string) ([]models.PatientProfile, error) {
	args := m.Called(ctx, search)
	result, _ := args.Get(0).([]models.PatientProfile)
	return result, args.Error(1)
}

func (m *MockBackendClient) GetPatientVitals(ctx context.Context, patientID string) (*models.PatientVitals, error) {
	args := m.Called(ctx, patientID)
	result, _ := args.Get(0).(*models.PatientVitals)
	return result, args.Error(1)
}

func (m *MockBackendClient) SaveVitals(ctx context.Context, upsert *models.VitalsUpsert) (string, error) {
	args := m.Called(ctx, upsert)
	return args.String(0), args.Error(1)
}

func (m *MockBackendClient) UpdatePatient(ctx context.Context, patientID string, update *models.PatientUpdate) (*models.PatientProfile, error) {
	args := m.Called(ctx, patientID, update)
	result, _ := args.Get(0).(*models.PatientProfile)
	return result, args.Error(1)
}

func (m *MockBackendClient) AddPatientVitals(ctx context.Context, entry *models.StaffVitalsEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockBackendClient) AddOrUpdateQueue(ctx context.Context, submission *models.QueueSubmission) (*models.QueueAssignment, error) {
	args := m.Called(ctx, submission)
	result, _ := args.Get(0).(*models.QueueAssignment)
	return result, args.Error(1)
}

func (m *MockBackendClient) CurrentQueue(ctx context.Context) ([]models.QueueEntry, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]models.QueueEntry)
	return result, args.Error(1)
}

func (m *MockBackendClient) MarkQueueComplete(ctx context.Context, queueID string) error {
	args := m.Called(ctx, queueID)
	return args.Error(0)
}

func (m *MockBackendClient) PrintReceipt(ctx context.Context, receipt *models.PrintReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}
