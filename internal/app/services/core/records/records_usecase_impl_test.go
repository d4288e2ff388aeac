package records

import (
	"bytes"
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/contracts/mocks"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/shared/kiosksession"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type stubQueue struct {
	board *responses.QueueBoard
	err   error
}

func (q *stubQueue) GetBoard(ctx context.Context) (*responses.QueueBoard, error) {
	return q.board, q.err
}

func (q *stubQueue) RefreshBoard(ctx context.Context) (*responses.QueueBoard, error) {
	return q.board, q.err
}

func (q *stubQueue) MarkComplete(ctx context.Context, queueID string) (*responses.QueueBoard, error) {
	return q.board, q.err
}

type recordsFixture struct {
	usecase *recordsUsecase
	backend *mocks.MockBackendClient
	queue   *stubQueue
	store   contracts.SessionStore
}

func (f *recordsFixture) seed(t *testing.T, session *models.KioskSession) {
	t.Helper()
	require.NoError(t, f.store.Create(context.Background(), session))
}

func setupRecords(t *testing.T) *recordsFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	internalConfig := &config.InternalConfig{
		Session: config.AppSession{IdleTTLInMinutes: 30, UpdateMaxRetries: 5},
	}
	store := kiosksession.NewKioskSessionStore(client, zap.NewNop(), internalConfig)
	backend := new(mocks.MockBackendClient)
	queue := &stubQueue{board: &responses.QueueBoard{}}

	uc := NewRecordsUsecase(store, backend, queue, internalConfig, zap.NewNop()).(*recordsUsecase)
	uc.now = func() time.Time { return fixedNow }

	return &recordsFixture{
		usecase: uc,
		backend: backend,
		queue:   queue,
		store:   store,
	}
}

func ptr(value float64) *float64 {
	return &value
}

func maria() *models.PatientProfile {
	return &models.PatientProfile{
		PatientID:     "P-001",
		FirstName:     "Maria",
		MiddleInitial: "L",
		LastName:      "Santos",
		Sex:           "Female",
		DateOfBirth:   "1990-05-20",
		ContactNumber: "09171234567",
		Address:       "Esperanza, Sultan Kudarat",
	}
}

func TestRecordsUsecase_GetRecords(t *testing.T) {
	t.Run("Patient History", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-1", "msantos", &models.LoginResult{Role: constvars.KioskRolePatient, PatientID: "P-001"}, fixedNow))
		recordedAt := fixedNow.Add(-time.Hour)
		f.backend.On("GetPatient", mock.Anything, "P-001").Return(maria(), nil).Once()
		f.backend.On("GetPatientVitals", mock.Anything, "P-001").Return(&models.PatientVitals{
			History: []models.VitalsRecord{
				{ID: "V-2", WeightKg: ptr(70), HeightCm: ptr(175), BloodPressure: "120/80", RecordedAt: &recordedAt},
				{ID: "V-1", WeightKg: ptr(71)},
			},
		}, nil).Once()

		records, err := f.usecase.GetRecords(context.Background(), "S-1")
		require.NoError(t, err)
		assert.Equal(t, "Maria L. Santos", records.Profile.Name)
		assert.Equal(t, 34, records.Profile.Age)
		require.Len(t, records.History, 2)
		require.NotNil(t, records.Latest, "latest falls back to the newest history row")
		assert.Equal(t, "V-2", records.Latest.ID)
		assert.Equal(t, "120/80 mmHg", records.Latest.Vitals.BloodPressure)
		assert.Equal(t, "22.9", records.Latest.Vitals.BMI)
	})

	t.Run("No Vitals Yet", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-1", "msantos", &models.LoginResult{Role: constvars.KioskRolePatient, PatientID: "P-001"}, fixedNow))
		f.backend.On("GetPatient", mock.Anything, "P-001").Return(maria(), nil).Once()
		f.backend.On("GetPatientVitals", mock.Anything, "P-001").Return(&models.PatientVitals{}, nil).Once()

		records, err := f.usecase.GetRecords(context.Background(), "S-1")
		require.NoError(t, err)
		assert.Nil(t, records.Latest)
		assert.NotNil(t, records.History)
		assert.Empty(t, records.History)
	})

	t.Run("Staff Has No Records", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-2", "njoy", &models.LoginResult{Role: constvars.KioskRoleStaff, StaffID: "ST-1"}, fixedNow))

		_, err := f.usecase.GetRecords(context.Background(), "S-2")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
		assert.Equal(t, constvars.RouteLogin, customErr.Next)
	})

	t.Run("Backend Down", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-1", "msantos", &models.LoginResult{Role: constvars.KioskRolePatient, PatientID: "P-001"}, fixedNow))
		f.backend.On("GetPatient", mock.Anything, "P-001").Return(nil, errors.New("backend down")).Once()

		_, err := f.usecase.GetRecords(context.Background(), "S-1")
		assert.Error(t, err)
	})
}

func TestRecordsUsecase_GetStaffDashboard(t *testing.T) {
	t.Run("With Queue", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-2", "njoy", &models.LoginResult{Role: constvars.KioskRoleStaff, Name: "Nurse Joy", StaffID: "ST-1"}, fixedNow))
		f.queue.board = &responses.QueueBoard{Total: 3, NowServing: &responses.QueueEntry{ID: "Q-1"}}

		dashboard, err := f.usecase.GetStaffDashboard(context.Background(), "S-2")
		require.NoError(t, err)
		assert.Equal(t, "Nurse Joy", dashboard.Name)
		assert.Equal(t, "ST-1", dashboard.StaffID)
		assert.Equal(t, 3, dashboard.QueueLength)
		assert.Equal(t, "Q-1", dashboard.NowServing.ID)
	})

	t.Run("Queue Unavailable", func(t *testing.T) {
		f := setupRecords(t)
		f.seed(t, models.NewKioskSession("S-2", "njoy", &models.LoginResult{Role: constvars.KioskRoleStaff, Name: "Nurse Joy"}, fixedNow))
		f.queue.err = errors.New("backend down")

		dashboard, err := f.usecase.GetStaffDashboard(context.Background(), "S-2")
		require.NoError(t, err)
		assert.Zero(t, dashboard.QueueLength)
		assert.Nil(t, dashboard.NowServing)
	})
}

func TestRecordsUsecase_SearchPatients(t *testing.T) {
	f := setupRecords(t)
	f.backend.On("SearchPatients", mock.Anything, "santos").Return([]models.PatientProfile{*maria()}, nil).Once()

	list, err := f.usecase.SearchPatients(context.Background(), "santos")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "P-001", list.Patients[0].PatientID)
	assert.Equal(t, "09171234567", list.Patients[0].ContactNumber)
}

func TestRecordsUsecase_ExportPatients(t *testing.T) {
	f := setupRecords(t)
	other := models.PatientProfile{PatientID: "P-002", FirstName: "Jose", LastName: "Cruz", Sex: "Male"}
	f.backend.On("SearchPatients", mock.Anything, "").Return([]models.PatientProfile{*maria(), other}, nil).Once()
	f.backend.On("GetPatientVitals", mock.Anything, "P-001").Return(&models.PatientVitals{
		Latest: &models.VitalsRecord{WeightKg: ptr(70), HeightCm: ptr(175), Temperature: ptr(36.6), BloodPressure: "120/80"},
	}, nil).Once()
	f.backend.On("GetPatientVitals", mock.Anything, "P-002").Return(nil, errors.New("not found")).Once()

	content, err := f.usecase.ExportPatients(context.Background(), "")
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(patientSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, patientExportHeader, rows[0])
	assert.Equal(t, "P-001", rows[1][0])
	assert.Equal(t, "Maria L. Santos", rows[1][1])
	assert.Equal(t, "22.9", rows[1][9])
	assert.Equal(t, "36.6 °C", rows[1][12])
	assert.Equal(t, "120/80 mmHg", rows[1][13])
	assert.Equal(t, "P-002", rows[2][0])
	assert.Equal(t, constvars.PlaceholderMissingValue, rows[2][7], "missing vitals export as placeholders")
}

func TestRecordsUsecase_ExportPatientsSearchFails(t *testing.T) {
	f := setupRecords(t)
	f.backend.On("SearchPatients", mock.Anything, "x").Return(nil, errors.New("backend down")).Once()

	_, err := f.usecase.ExportPatients(context.Background(), "x")
	assert.Error(t, err)
}

func TestRecordsUsecase_UpdatePatient(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		f := setupRecords(t)
		updated := maria()
		updated.Address = "Purok 3, Esperanza"
		f.backend.On("UpdatePatient", mock.Anything, "P-001", &models.PatientUpdate{Address: "Purok 3, Esperanza"}).
			Return(updated, nil).Once()

		profile, err := f.usecase.UpdatePatient(context.Background(), "P-001", &requests.UpdatePatient{Address: "Purok 3, Esperanza"})
		require.NoError(t, err)
		assert.Equal(t, "Purok 3, Esperanza", profile.Address)
		assert.Equal(t, "Maria L. Santos", profile.Name)
		f.backend.AssertExpectations(t)
	})

	t.Run("Nothing To Update", func(t *testing.T) {
		f := setupRecords(t)

		_, err := f.usecase.UpdatePatient(context.Background(), "P-001", &requests.UpdatePatient{})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		f.backend.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Backend Rejects", func(t *testing.T) {
		f := setupRecords(t)
		f.backend.On("UpdatePatient", mock.Anything, "P-001", mock.Anything).
			Return(nil, exceptions.ErrPatientUpdateRejected(errors.New("400"), "contact: invalid")).Once()

		_, err := f.usecase.UpdatePatient(context.Background(), "P-001", &requests.UpdatePatient{ContactNumber: "0917"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "contact: invalid", customErr.ClientMessage)
	})
}

func TestRecordsUsecase_AddPatientVitals(t *testing.T) {
	t.Run("Normalized And Reloaded", func(t *testing.T) {
		f := setupRecords(t)
		f.backend.On("AddPatientVitals", mock.Anything, &models.StaffVitalsEntry{
			PatientID:     "P-001",
			BloodPressure: "130/85",
			Date:          "2025-03-10",
		}).Return("V-9", nil).Once()
		f.backend.On("GetPatient", mock.Anything, "P-001").Return(maria(), nil).Once()
		f.backend.On("GetPatientVitals", mock.Anything, "P-001").Return(&models.PatientVitals{
			History: []models.VitalsRecord{{ID: "V-9", BloodPressure: "130/85"}},
		}, nil).Once()

		records, err := f.usecase.AddPatientVitals(context.Background(), "P-001", &requests.StaffVitals{BloodPressure: "BP 130/85"})
		require.NoError(t, err)
		require.NotNil(t, records.Latest)
		assert.Equal(t, "130/85 mmHg", records.Latest.Vitals.BloodPressure)
		f.backend.AssertExpectations(t)
	})

	t.Run("Unparseable", func(t *testing.T) {
		f := setupRecords(t)

		_, err := f.usecase.AddPatientVitals(context.Background(), "P-001", &requests.StaffVitals{BloodPressure: "high"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientInvalidBloodPressure, customErr.ClientMessage)
		f.backend.AssertNotCalled(t, "AddPatientVitals", mock.Anything, mock.Anything)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		f := setupRecords(t)

		_, err := f.usecase.AddPatientVitals(context.Background(), "P-001", &requests.StaffVitals{BloodPressure: "900/80"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		f.backend.AssertNotCalled(t, "AddPatientVitals", mock.Anything, mock.Anything)
	})

	t.Run("Backend Rejects", func(t *testing.T) {
		f := setupRecords(t)
		f.backend.On("AddPatientVitals", mock.Anything, mock.Anything).
			Return("", exceptions.ErrStaffVitalsRejected(errors.New("400"), "")).Once()

		_, err := f.usecase.AddPatientVitals(context.Background(), "P-001", &requests.StaffVitals{BloodPressure: "120/80", Date: "2025-03-09"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.ErrClientStaffVitalsFailed, customErr.ClientMessage)
		f.backend.AssertNotCalled(t, "GetPatientVitals", mock.Anything, mock.Anything)
	})
}
