package summary

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/contracts/mocks"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/shared/kiosksession"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testSessionID    = "S-1"
	testPatientID    = "P-001"
	latestVitalsKeyP = "kiosk:latest_vitals:P-001"
)

type summaryFixture struct {
	usecase  contracts.SummaryUsecase
	store    contracts.SessionStore
	backend  *mocks.MockBackendClient
	redis    *mocks.MockRedisRepository
	priority *mocks.MockPriorityCodeGenerator
}

func setupSummary(t *testing.T, login *models.LoginResult) *summaryFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	internalConfig := &config.InternalConfig{
		Session:    config.AppSession{IdleTTLInMinutes: 30, LatestVitalsTTLInHours: 24, UpdateMaxRetries: 5},
		QueueBoard: config.AppQueue{LookupAttempts: 3, LookupIntervalInMillis: 1},
	}
	store := kiosksession.NewKioskSessionStore(client, zap.NewNop(), internalConfig)
	require.NoError(t, store.Create(context.Background(), models.NewKioskSession(testSessionID, "msantos", login, time.Now())))

	f := &summaryFixture{
		store:    store,
		backend:  new(mocks.MockBackendClient),
		redis:    new(mocks.MockRedisRepository),
		priority: new(mocks.MockPriorityCodeGenerator),
	}
	f.usecase = NewSummaryUsecase(store, f.backend, f.redis, f.priority, internalConfig, zap.NewNop())
	return f
}

func (f *summaryFixture) observeLogs() *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	f.usecase.(*summaryUsecase).Log = zap.New(core)
	return logs
}

func businessEvents(logs *observer.ObservedLogs, event string) []observer.LoggedEntry {
	return logs.FilterField(zap.String(constvars.LoggingBusinessEventKey, event)).All()
}

func patientLogin() *models.LoginResult {
	return &models.LoginResult{Role: constvars.KioskRolePatient, Name: "Maria Santos", PatientID: testPatientID}
}

func (f *summaryFixture) mutate(t *testing.T, fn func(wizard *models.WizardSession)) {
	t.Helper()
	_, err := f.store.Update(context.Background(), testSessionID, func(session *models.KioskSession) error {
		fn(session.CurrentWizard(time.Now()))
		return nil
	})
	require.NoError(t, err)
}

func (f *summaryFixture) wizard(t *testing.T) *models.WizardSession {
	t.Helper()
	session, err := f.store.Get(context.Background(), testSessionID)
	require.NoError(t, err)
	require.NotNil(t, session.Wizard)
	return session.Wizard
}

func fillAll(heartRate float64) func(wizard *models.WizardSession) {
	return func(wizard *models.WizardSession) {
		now := time.Now()
		wizard.SetMetric(models.MetricWeightKg, 70, now)
		wizard.SetMetric(models.MetricHeightCm, 175, now)
		wizard.SetMetric(models.MetricPulseBpm, heartRate, now)
		wizard.SetMetric(models.MetricSpO2Percent, 98, now)
		wizard.SetMetric(models.MetricTemperatureC, 36.6, now)
		wizard.SetBloodPressure(118, 76, now)
		wizard.SetVitalRecordID("V-1")
	}
}

func queueEntry(number string) models.QueueEntry {
	return models.QueueEntry{
		ID:             "Q-1",
		QueueNumber:    number,
		PriorityStatus: constvars.PriorityPriority,
		PriorityCode:   "E01",
		Patient:        models.PatientProfile{PatientID: testPatientID},
	}
}

func TestSummaryUsecase_GetSummary_SubmitsOnceAndAdoptsBackendQueue(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, fillAll(120))
	ctx := context.Background()
	logs := f.observeLogs()

	f.priority.On("Next", mock.Anything, testSessionID).Return("E01", nil).Once()
	f.backend.On("AddOrUpdateQueue", mock.Anything, mock.MatchedBy(func(s *models.QueueSubmission) bool {
		return s.PatientID == testPatientID &&
			s.Priority == constvars.PriorityPriority &&
			s.PriorityCode == "E01" &&
			len(s.PriorityReasons) == 1 &&
			s.Vitals.ID == "V-1" &&
			s.Vitals.BloodPressure == "118/76"
	})).Return(&models.QueueAssignment{PriorityStatus: constvars.PriorityPriority, PriorityCode: "E01"}, nil).Once()
	f.backend.On("CurrentQueue", mock.Anything).Return([]models.QueueEntry{queueEntry("A-005")}, nil)
	f.redis.On("Set", mock.Anything, latestVitalsKeyP, mock.AnythingOfType("*models.LatestVitals"), 24*time.Hour).Return(nil)

	result, err := f.usecase.GetSummary(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "A-005", result.QueueNumber)
	assert.False(t, result.Provisional)
	assert.Equal(t, constvars.PriorityPriority, result.Priority)
	assert.Equal(t, "E01", result.PriorityCode)
	assert.Equal(t, []string{"Tachycardia (HR > 100)"}, result.Triage.Reasons)
	assert.Equal(t, "22.9", result.Vitals.BMI)
	assert.Equal(t, "Maria Santos", result.PatientName)
	assert.Equal(t, constvars.RouteRecords, result.Next)

	_, err = f.usecase.GetSummary(ctx, testSessionID)
	require.NoError(t, err)

	f.backend.AssertNumberOfCalls(t, "AddOrUpdateQueue", 1)
	f.priority.AssertNumberOfCalls(t, "Next", 1)
	assert.Len(t, businessEvents(logs, constvars.EventQueueSubmitted), 1, "one event per snapshot")
	f.redis.AssertNotCalled(t, "GetJSON", mock.Anything, mock.Anything, mock.Anything)

	wizard := f.wizard(t)
	assert.True(t, wizard.QueueSubmitted)
	require.NotNil(t, wizard.Queue)
	assert.Equal(t, "A-005", wizard.Queue.QueueNumber)
}

func TestSummaryUsecase_GetSummary_QueueNotFound(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, fillAll(72))

	f.backend.On("AddOrUpdateQueue", mock.Anything, mock.Anything).Return(nil, nil).Once()
	f.backend.On("CurrentQueue", mock.Anything).Return([]models.QueueEntry{}, nil)
	f.redis.On("Set", mock.Anything, latestVitalsKeyP, mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.GetSummary(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, constvars.PlaceholderQueueNumber, result.QueueNumber)
	assert.True(t, result.Provisional)
	assert.Equal(t, constvars.PriorityNormal, result.Priority)
	assert.Empty(t, result.PriorityCode)
	assert.Empty(t, result.Triage.Reasons)

	f.backend.AssertNumberOfCalls(t, "CurrentQueue", 3)
	f.priority.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestSummaryUsecase_GetSummary_SubmissionFailureIsRetried(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, fillAll(72))
	ctx := context.Background()

	f.backend.On("AddOrUpdateQueue", mock.Anything, mock.Anything).
		Return(nil, exceptions.ErrBackendRequest(errors.New("connection refused"), constvars.BackendQueueAddOrUpdate)).Once()
	f.backend.On("CurrentQueue", mock.Anything).Return(nil, exceptions.ErrBackendRequest(errors.New("connection refused"), constvars.BackendQueueCurrent))
	f.redis.On("Set", mock.Anything, latestVitalsKeyP, mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.GetSummary(ctx, testSessionID)
	require.NoError(t, err, "queue failures do not fail the summary")
	assert.Equal(t, constvars.PlaceholderQueueNumber, result.QueueNumber)
	assert.False(t, f.wizard(t).QueueSubmitted)

	f.backend.On("AddOrUpdateQueue", mock.Anything, mock.Anything).Return(nil, nil).Once()
	_, err = f.usecase.GetSummary(ctx, testSessionID)
	require.NoError(t, err)

	f.backend.AssertNumberOfCalls(t, "AddOrUpdateQueue", 2)
	assert.True(t, f.wizard(t).QueueSubmitted)
}

func TestSummaryUsecase_GetSummary_FallsBackToLatestVitals(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, func(wizard *models.WizardSession) {
		wizard.SetMetric(models.MetricWeightKg, 70, time.Now())
	})

	height, temperature := 175.0, 38.5
	f.redis.On("GetJSON", mock.Anything, latestVitalsKeyP, mock.AnythingOfType("*models.LatestVitals")).
		Run(func(args mock.Arguments) {
			latest := args.Get(2).(*models.LatestVitals)
			latest.Vitals = models.VitalsRecord{HeightCm: &height, Temperature: &temperature}
		}).Return(true, nil).Once()
	f.priority.On("Next", mock.Anything, testSessionID).Return("E04", nil).Once()
	f.backend.On("AddOrUpdateQueue", mock.Anything, mock.MatchedBy(func(s *models.QueueSubmission) bool {
		return s.Vitals.HeightCm != nil && *s.Vitals.HeightCm == 175 && s.Vitals.BMI != nil
	})).Return(nil, nil).Once()
	f.backend.On("CurrentQueue", mock.Anything).Return([]models.QueueEntry{}, nil)
	f.redis.On("Set", mock.Anything, latestVitalsKeyP, mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.GetSummary(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "70.0 kg", result.Vitals.Weight)
	assert.Equal(t, "175.0 cm", result.Vitals.Height)
	assert.Equal(t, "22.9", result.Vitals.BMI)
	assert.Equal(t, constvars.PlaceholderMissingValue, result.Vitals.HeartRate)
	assert.Equal(t, []string{"Fever (Temp ≥ 38°C)"}, result.Triage.Reasons)
	assert.Equal(t, "E04", result.PriorityCode)
	f.backend.AssertExpectations(t)
}

func TestSummaryUsecase_GetSummary_MissingIdentity(t *testing.T) {
	f := setupSummary(t, &models.LoginResult{Role: constvars.KioskRoleStaff, Name: "Nurse Joy", StaffID: "ST-1"})

	_, err := f.usecase.GetSummary(context.Background(), testSessionID)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	assert.Equal(t, constvars.RouteLogin, customErr.Next)
	f.backend.AssertNotCalled(t, "AddOrUpdateQueue", mock.Anything, mock.Anything)
}

func TestSummaryUsecase_Print(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := setupSummary(t, patientLogin())
		f.mutate(t, func(wizard *models.WizardSession) {
			fillAll(72)(wizard)
			wizard.Priority = constvars.PriorityNormal
			wizard.Triage = &models.TriageResult{Reasons: []string{}}
			wizard.Queue = &models.QueueAssignment{QueueNumber: "A-007", PriorityStatus: constvars.PriorityNormal}
		})
		f.backend.On("PrintReceipt", mock.Anything, mock.MatchedBy(func(r *models.PrintReceipt) bool {
			return r.PatientName == "Maria Santos" && r.QueueNumber == "A-007" &&
				r.Priority == constvars.PriorityNormal && r.Vitals.BloodPressure == "118/76"
		})).Return(nil).Once()

		logs := f.observeLogs()

		result, err := f.usecase.Print(context.Background(), testSessionID)
		require.NoError(t, err)
		assert.True(t, result.Printed)
		assert.Len(t, businessEvents(logs, constvars.EventReceiptPrinted), 1)
		assert.Equal(t, constvars.RouteRecords, result.Next)
		f.backend.AssertExpectations(t)
	})

	t.Run("Printer Rejects", func(t *testing.T) {
		f := setupSummary(t, patientLogin())
		f.mutate(t, fillAll(72))
		f.backend.On("PrintReceipt", mock.Anything, mock.Anything).
			Return(exceptions.ErrPrintRejected(errors.New("printer offline"), "Printer offline")).Once()

		_, err := f.usecase.Print(context.Background(), testSessionID)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
		assert.Equal(t, "Printer offline", customErr.ClientMessage)
		assert.Equal(t, constvars.RouteRecords, customErr.Next, "the visit can still continue to records")
	})
}

func TestSummaryUsecase_Finish(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, fillAll(72))

	logs := f.observeLogs()

	result, err := f.usecase.Finish(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, constvars.RouteRecords, result.Next)
	assert.True(t, f.wizard(t).Closed)

	events := businessEvents(logs, constvars.EventVisitFinished)
	require.Len(t, events, 1)
	assert.Equal(t, testPatientID, events[0].ContextMap()[constvars.LoggingPatientIDKey])
}

func TestSummaryUsecase_GetSummary_AfterFinishDoesNotResubmit(t *testing.T) {
	f := setupSummary(t, patientLogin())
	f.mutate(t, fillAll(72))
	ctx := context.Background()

	_, err := f.usecase.Finish(ctx, testSessionID)
	require.NoError(t, err)

	f.redis.On("GetJSON", mock.Anything, latestVitalsKeyP, mock.Anything).Return(false, nil)
	f.backend.On("CurrentQueue", mock.Anything).Return([]models.QueueEntry{}, nil)

	result, err := f.usecase.GetSummary(ctx, testSessionID)
	require.NoError(t, err)
	assert.True(t, result.Provisional)

	f.backend.AssertNotCalled(t, "AddOrUpdateQueue", mock.Anything, mock.Anything)
	f.redis.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, f.wizard(t).Closed)
}
