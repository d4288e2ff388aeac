package records

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/core/triage"
	"esperanza-kiosk/internal/app/services/shared/vitalsview"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const exportConcurrency = 4

type recordsUsecase struct {
	SessionStore   contracts.SessionStore
	BackendClient  contracts.BackendClient
	QueueUsecase   contracts.QueueUsecase
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	now            func() time.Time
}

func NewRecordsUsecase(
	sessionStore contracts.SessionStore,
	backendClient contracts.BackendClient,
	queueUsecase contracts.QueueUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RecordsUsecase {
	return &recordsUsecase{
		SessionStore:   sessionStore,
		BackendClient:  backendClient,
		QueueUsecase:   queueUsecase,
		InternalConfig: internalConfig,
		Log:            logger,
		now:            time.Now,
	}
}

// GetRecords returns the signed-in patient's profile and vitals history.
func (uc *recordsUsecase) GetRecords(ctx context.Context, sessionID string) (*responses.Records, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.GetRecords called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() || session.PatientID == "" {
		return nil, exceptions.ErrPatientIdentityMissing(models.ErrPatientIdentityMissing)
	}

	return uc.GetPatientVitals(ctx, session.PatientID)
}

func (uc *recordsUsecase) GetPatientVitals(ctx context.Context, patientID string) (*responses.Records, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.GetPatientVitals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	profile, err := uc.BackendClient.GetPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("recordsUsecase.GetPatientVitals error calling BackendClient.GetPatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	vitals, err := uc.BackendClient.GetPatientVitals(ctx, patientID)
	if err != nil {
		uc.Log.Error("recordsUsecase.GetPatientVitals error calling BackendClient.GetPatientVitals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.Records{
		Profile: vitalsview.Profile(*profile, uc.now()),
		History: make([]responses.VitalsRow, 0, len(vitals.History)),
	}
	for _, record := range vitals.History {
		result.History = append(result.History, vitalsview.VitalsRow(record))
	}
	if latest := latestRecord(vitals); latest != nil {
		row := vitalsview.VitalsRow(*latest)
		result.Latest = &row
	}

	uc.Log.Info("recordsUsecase.GetPatientVitals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingResponseCountKey, len(result.History)),
	)
	return result, nil
}

// GetStaffDashboard never fails on the queue: an unavailable board shows as empty.
func (uc *recordsUsecase) GetStaffDashboard(ctx context.Context, sessionID string) (*responses.StaffDashboard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.GetStaffDashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	dashboard := &responses.StaffDashboard{
		StaffID: session.StaffID,
		Name:    session.Name,
	}

	board, err := uc.QueueUsecase.GetBoard(ctx)
	if err != nil {
		uc.Log.Warn("recordsUsecase.GetStaffDashboard queue board unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return dashboard, nil
	}
	dashboard.QueueLength = board.Total
	dashboard.NowServing = board.NowServing
	return dashboard, nil
}

func (uc *recordsUsecase) SearchPatients(ctx context.Context, search string) (*responses.PatientList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, search),
	)

	patients, err := uc.BackendClient.SearchPatients(ctx, search)
	if err != nil {
		uc.Log.Error("recordsUsecase.SearchPatients error calling BackendClient.SearchPatients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	result := &responses.PatientList{
		Patients: make([]responses.PatientProfile, 0, len(patients)),
		Count:    len(patients),
	}
	for _, patient := range patients {
		result.Patients = append(result.Patients, vitalsview.Profile(patient, now))
	}
	return result, nil
}

// ExportPatients renders the patient list with each patient's latest vitals
// as an XLSX workbook. A patient whose vitals cannot be loaded is exported
// with empty vitals columns.
func (uc *recordsUsecase) ExportPatients(ctx context.Context, search string) ([]byte, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.ExportPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, search),
	)

	patients, err := uc.BackendClient.SearchPatients(ctx, search)
	if err != nil {
		uc.Log.Error("recordsUsecase.ExportPatients error calling BackendClient.SearchPatients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	rows := make([]exportRow, len(patients))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(exportConcurrency)
	for i, patient := range patients {
		i, patient := i, patient
		rows[i].Patient = patient
		group.Go(func() error {
			vitals, err := uc.BackendClient.GetPatientVitals(groupCtx, patient.PatientID)
			if err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				uc.Log.Warn("recordsUsecase.ExportPatients vitals unavailable",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingPatientIDKey, patient.PatientID),
					zap.Error(err),
				)
				return nil
			}
			rows[i].Latest = latestRecord(vitals)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var content []byte
	err = utils.LogOperation(uc.Log, "recordsUsecase.buildPatientWorkbook", requestID, func() error {
		var buildErr error
		content, buildErr = buildPatientWorkbook(rows, uc.now())
		return buildErr
	})
	if err != nil {
		return nil, exceptions.ErrBuildSpreadsheet(err)
	}

	uc.Log.Info("recordsUsecase.ExportPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(rows)),
	)
	return content, nil
}

func (uc *recordsUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	update := &models.PatientUpdate{
		FirstName:     request.FirstName,
		MiddleInitial: request.MiddleInitial,
		LastName:      request.LastName,
		Sex:           request.Sex,
		ContactNumber: request.ContactNumber,
		Address:       request.Address,
		Birthdate:     request.Birthdate,
		Pin:           request.Pin,
	}
	if update.IsEmpty() {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}

	profile, err := uc.BackendClient.UpdatePatient(ctx, patientID, update)
	if err != nil {
		uc.Log.Error("recordsUsecase.UpdatePatient error calling BackendClient.UpdatePatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventPatientUpdated, requestID,
		zap.String(constvars.LoggingPatientIDKey, profile.PatientID),
	)
	result := vitalsview.Profile(*profile, uc.now())
	return &result, nil
}

// AddPatientVitals records a staff-entered blood pressure and returns the
// refreshed vitals history. The reading is normalized to "SYS/DIA" and must
// fall inside the same bounds as the kiosk entry form.
func (uc *recordsUsecase) AddPatientVitals(ctx context.Context, patientID string, request *requests.StaffVitals) (*responses.Records, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("recordsUsecase.AddPatientVitals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	systolic, diastolic, ok := triage.ParseBloodPressure(request.BloodPressure)
	if !ok {
		return nil, exceptions.ErrInvalidBloodPressure(fmt.Errorf("cannot parse %q", request.BloodPressure))
	}
	if err := utils.ValidateStruct(&requests.SubmitBloodPressure{Systolic: systolic, Diastolic: diastolic}); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	date := request.Date
	if date == "" {
		date = uc.now().Format("2006-01-02")
	}
	entry := &models.StaffVitalsEntry{
		PatientID:     patientID,
		BloodPressure: fmt.Sprintf("%d/%d", systolic, diastolic),
		Date:          date,
	}
	recordID, err := uc.BackendClient.AddPatientVitals(ctx, entry)
	if err != nil {
		uc.Log.Error("recordsUsecase.AddPatientVitals error calling BackendClient.AddPatientVitals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventStaffVitalsSent, requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingVitalIDKey, recordID),
	)
	return uc.GetPatientVitals(ctx, patientID)
}

func latestRecord(vitals *models.PatientVitals) *models.VitalsRecord {
	if vitals == nil {
		return nil
	}
	if vitals.Latest != nil {
		return vitals.Latest
	}
	if len(vitals.History) > 0 {
		return &vitals.History[0]
	}
	return nil
}
