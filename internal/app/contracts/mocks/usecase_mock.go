package mocks

import (
	"context"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.Login) (*contracts.LoginOutput, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*contracts.LoginOutput)
	return result, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthUsecase) Register(ctx context.Context, request *requests.RegisterPatient) (*contracts.RegisterOutput, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*contracts.RegisterOutput)
	return result, args.Error(1)
}

func (m *MockAuthUsecase) ResolveSession(ctx context.Context, sessionToken string) (*models.KioskSession, error) {
	args := m.Called(ctx, sessionToken)
	result, _ := args.Get(0).(*models.KioskSession)
	return result, args.Error(1)
}

type MockWizardUsecase struct {
	mock.Mock
}

func (m *MockWizardUsecase) GetOverview(ctx context.Context, sessionID string) (*responses.WizardOverview, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.WizardOverview)
	return result, args.Error(1)
}

func (m *MockWizardUsecase) GetStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	args := m.Called(ctx, sessionID, step)
	result, _ := args.Get(0).(*responses.WizardStep)
	return result, args.Error(1)
}

func (m *MockWizardUsecase) StartStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	args := m.Called(ctx, sessionID, step)
	result, _ := args.Get(0).(*responses.WizardStep)
	return result, args.Error(1)
}

func (m *MockWizardUsecase) SubmitBloodPressure(ctx context.Context, sessionID string, request *requests.SubmitBloodPressure) (*responses.WizardStep, error) {
	args := m.Called(ctx, sessionID, request)
	result, _ := args.Get(0).(*responses.WizardStep)
	return result, args.Error(1)
}

func (m *MockWizardUsecase) RetrySave(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	args := m.Called(ctx, sessionID, step)
	result, _ := args.Get(0).(*responses.WizardStep)
	return result, args.Error(1)
}

func (m *MockWizardUsecase) Continue(ctx context.Context, sessionID, step string) (*responses.WizardContinue, error) {
	args := m.Called(ctx, sessionID, step)
	result, _ := args.Get(0).(*responses.WizardContinue)
	return result, args.Error(1)
}

type MockSummaryUsecase struct {
	mock.Mock
}

func (m *MockSummaryUsecase) GetSummary(ctx context.Context, sessionID string) (*responses.Summary, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.Summary)
	return result, args.Error(1)
}

func (m *MockSummaryUsecase) Print(ctx context.Context, sessionID string) (*responses.Print, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.Print)
	return result, args.Error(1)
}

func (m *MockSummaryUsecase) Finish(ctx context.Context, sessionID string) (*responses.Navigation, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.Navigation)
	return result, args.Error(1)
}

type MockQueueUsecase struct {
	mock.Mock
}

func (m *MockQueueUsecase) GetBoard(ctx context.Context) (*responses.QueueBoard, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*responses.QueueBoard)
	return result, args.Error(1)
}

func (m *MockQueueUsecase) RefreshBoard(ctx context.Context) (*responses.QueueBoard, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*responses.QueueBoard)
	return result, args.Error(1)
}

func (m *MockQueueUsecase) MarkComplete(ctx context.Context, queueID string) (*responses.QueueBoard, error) {
	args := m.Called(ctx, queueID)
	result, _ := args.Get(0).(*responses.QueueBoard)
	return result, args.Error(1)
}

type MockRecordsUsecase struct {
	mock.Mock
}

func (m *MockRecordsUsecase) GetRecords(ctx context.Context, sessionID string) (*responses.Records, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.Records)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) GetStaffDashboard(ctx context.Context, sessionID string) (*responses.StaffDashboard, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*responses.StaffDashboard)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) SearchPatients(ctx context.Context, search string) (*responses.PatientList, error) {
	args := m.Called(ctx, search)
	result, _ := args.Get(0).(*responses.PatientList)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) GetPatientVitals(ctx context.Context, patientID string) (*responses.Records, error) {
	args := m.Called(ctx, patientID)
	result, _ := args.Get(0).(*responses.Records)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) ExportPatients(ctx context.Context, search string) ([]byte, error) {
	args := m.Called(ctx, search)
	result, _ := args.Get(0).([]byte)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.PatientProfile, error) {
	args := m.Called(ctx, patientID, request)
	result, _ := args.Get(0).(*responses.PatientProfile)
	return result, args.Error(1)
}

func (m *MockRecordsUsecase) AddPatientVitals(ctx context.Context, patientID string, request *requests.StaffVitals) (*responses.Records, error) {
	args := m.Called(ctx, patientID, request)
	result, _ := args.Get(0).(*responses.Records)
	return result, args.Error(1)
}
