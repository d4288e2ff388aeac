package summary

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/core/triage"
	"esperanza-kiosk/internal/app/services/shared/metrics"
	"esperanza-kiosk/internal/app/services/shared/vitalsview"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type summaryUsecase struct {
	SessionStore          contracts.SessionStore
	BackendClient         contracts.BackendClient
	RedisRepository       contracts.RedisRepository
	PriorityCodeGenerator contracts.PriorityCodeGenerator
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	latestVitalsTTL       time.Duration
	lookupAttempts        int
	lookupInterval        time.Duration
	now                   func() time.Time
}

func NewSummaryUsecase(
	sessionStore contracts.SessionStore,
	backendClient contracts.BackendClient,
	redisRepository contracts.RedisRepository,
	priorityCodeGenerator contracts.PriorityCodeGenerator,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SummaryUsecase {
	attempts := internalConfig.QueueBoard.LookupAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &summaryUsecase{
		SessionStore:          sessionStore,
		BackendClient:         backendClient,
		RedisRepository:       redisRepository,
		PriorityCodeGenerator: priorityCodeGenerator,
		InternalConfig:        internalConfig,
		Log:                   logger,
		latestVitalsTTL:       time.Duration(internalConfig.Session.LatestVitalsTTLInHours) * time.Hour,
		lookupAttempts:        attempts,
		lookupInterval:        time.Duration(internalConfig.QueueBoard.LookupIntervalInMillis) * time.Millisecond,
		now:                   time.Now,
	}
}

func latestVitalsKey(patientID string) string {
	return fmt.Sprintf(constvars.RedisKeyLatestVitals, patientID)
}

// GetSummary classifies the accumulated snapshot, submits it to the queue
// once and shows the backend's queue assignment when it can be found.
func (uc *summaryUsecase) GetSummary(ctx context.Context, sessionID string) (*responses.Summary, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("summaryUsecase.GetSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, wizard, err := uc.loadWizard(ctx, sessionID)
	if err != nil {
		uc.Log.Error("summaryUsecase.GetSummary error loading wizard session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	patientID := wizard.PatientID
	startedAt := wizard.StartedAt

	record := uc.collectVitals(ctx, wizard)
	classification := triage.Classify(triage.InputFromRecord(record))
	priority := triage.LocalPriority(classification)
	priorityCode := ""
	if classification.Abnormal {
		priorityCode = wizard.PriorityCode
		if priorityCode == "" {
			priorityCode, err = uc.PriorityCodeGenerator.Next(ctx, sessionID)
			if err != nil {
				uc.Log.Warn("summaryUsecase.GetSummary error generating priority code",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				priorityCode = ""
			}
		}
	}

	var submitted *models.QueueAssignment
	claimed, err := uc.claimQueueSubmission(ctx, sessionID, startedAt)
	if err != nil {
		return nil, err
	}
	if claimed {
		previousNumber := ""
		if wizard.Queue != nil {
			previousNumber = wizard.Queue.QueueNumber
		}
		submitted, err = uc.BackendClient.AddOrUpdateQueue(ctx, &models.QueueSubmission{
			PatientID:       patientID,
			Vitals:          record,
			Priority:        priority,
			PriorityCode:    priorityCode,
			PriorityReasons: classification.Reasons,
			QueueNumber:     previousNumber,
		})
		metrics.RecordQueueSubmission(err)
		if err != nil {
			uc.Log.Error("summaryUsecase.GetSummary error submitting queue entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
			uc.releaseQueueSubmission(ctx, sessionID, startedAt)
		} else {
			utils.LogBusinessEvent(uc.Log, constvars.EventQueueSubmitted, requestID,
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingPriorityKey, priority),
				zap.String(constvars.LoggingPriorityCodeKey, priorityCode),
			)
		}
	}

	assignment := uc.lookupQueue(ctx, patientID)
	if assignment == nil && submitted != nil && submitted.QueueNumber != "" {
		assignment = submitted
	}
	if assignment == nil && wizard.Queue != nil && wizard.Queue.QueueNumber != "" {
		assignment = wizard.Queue
	}

	stored := false
	_, err = uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		stored = false
		current := session.Wizard
		if current == nil || current.Closed || !current.StartedAt.Equal(startedAt) {
			return nil
		}
		stored = true
		current.Triage = &classification
		current.Priority = priority
		current.PriorityCode = priorityCode
		if assignment != nil {
			current.Queue = assignment
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("summaryUsecase.GetSummary error storing summary state",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if stored {
		uc.storeLatestVitals(ctx, patientID, record, &classification, assignment)
	}

	result := &responses.Summary{
		PatientID:    patientID,
		PatientName:  session.Name,
		Vitals:       vitalsview.Summary(record),
		Triage:       responses.Triage{Abnormal: classification.Abnormal, Reasons: classification.Reasons},
		QueueNumber:  constvars.PlaceholderQueueNumber,
		Priority:     priority,
		PriorityCode: priorityCode,
		Provisional:  true,
		Next:         constvars.RouteRecords,
	}
	if assignment != nil && assignment.QueueNumber != "" {
		result.QueueNumber = assignment.QueueNumber
		result.Provisional = false
		if assignment.PriorityStatus != "" {
			result.Priority = assignment.PriorityStatus
		}
		if assignment.PriorityCode != "" {
			result.PriorityCode = assignment.PriorityCode
		}
	}

	uc.Log.Info("summaryUsecase.GetSummary succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingQueueNumberKey, result.QueueNumber),
		zap.String(constvars.LoggingPriorityKey, result.Priority),
		zap.Strings(constvars.LoggingReasonsKey, classification.Reasons),
	)
	return result, nil
}

func (uc *summaryUsecase) storeLatestVitals(ctx context.Context, patientID string, record models.VitalsRecord, classification *models.TriageResult, assignment *models.QueueAssignment) {
	latest := &models.LatestVitals{
		Vitals:    record,
		Triage:    classification,
		UpdatedAt: uc.now(),
	}
	if assignment != nil {
		latest.QueueNumber = assignment.QueueNumber
	}
	if err := uc.RedisRepository.Set(ctx, latestVitalsKey(patientID), latest, uc.latestVitalsTTL); err != nil {
		uc.Log.Warn("summaryUsecase.storeLatestVitals error writing latest vitals",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	}
}

func (uc *summaryUsecase) Print(ctx context.Context, sessionID string) (*responses.Print, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("summaryUsecase.Print called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, wizard, err := uc.loadWizard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	receipt := &models.PrintReceipt{
		PatientID:    wizard.PatientID,
		PatientName:  session.Name,
		QueueNumber:  constvars.PlaceholderQueueNumber,
		Priority:     wizard.Priority,
		PriorityCode: wizard.PriorityCode,
		Reasons:      []string{},
		Vitals:       uc.collectVitals(ctx, wizard),
		PrintedAt:    uc.now(),
	}
	if receipt.Priority == "" {
		receipt.Priority = constvars.PriorityNormal
	}
	if wizard.Triage != nil {
		receipt.Reasons = wizard.Triage.Reasons
	}
	if wizard.Queue != nil && wizard.Queue.QueueNumber != "" {
		receipt.QueueNumber = wizard.Queue.QueueNumber
		if wizard.Queue.PriorityStatus != "" {
			receipt.Priority = wizard.Queue.PriorityStatus
		}
		if wizard.Queue.PriorityCode != "" {
			receipt.PriorityCode = wizard.Queue.PriorityCode
		}
	}

	if err := uc.BackendClient.PrintReceipt(ctx, receipt); err != nil {
		uc.Log.Error("summaryUsecase.Print error printing receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, receipt.PatientID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr.WithNext(constvars.RouteRecords)
		}
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventReceiptPrinted, requestID,
		zap.String(constvars.LoggingPatientIDKey, receipt.PatientID),
		zap.String(constvars.LoggingQueueNumberKey, receipt.QueueNumber),
	)
	return &responses.Print{Printed: true, Next: constvars.RouteRecords}, nil
}

// Finish closes the current snapshot. The next wizard visit starts a new one.
func (uc *summaryUsecase) Finish(ctx context.Context, sessionID string) (*responses.Navigation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("summaryUsecase.Finish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patientID := ""
	_, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		if session.Wizard != nil {
			session.Wizard.Closed = true
			patientID = session.Wizard.PatientID
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("summaryUsecase.Finish error closing wizard",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	utils.LogBusinessEvent(uc.Log, constvars.EventVisitFinished, requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return &responses.Navigation{Next: constvars.RouteRecords}, nil
}

func (uc *summaryUsecase) loadWizard(ctx context.Context, sessionID string) (*models.KioskSession, *models.WizardSession, error) {
	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	wizard := session.CurrentWizard(uc.now())
	if _, err := wizard.GetPatientID(); err != nil {
		return nil, nil, exceptions.ErrPatientIdentityMissing(err)
	}
	return session, wizard, nil
}

// collectVitals returns the snapshot, completed from the patient's latest
// stored vitals when a metric was never captured in this visit.
func (uc *summaryUsecase) collectVitals(ctx context.Context, wizard *models.WizardSession) models.VitalsRecord {
	record := wizard.Snapshot()
	if record.IsComplete() {
		return record
	}

	var latest models.LatestVitals
	found, err := uc.RedisRepository.GetJSON(ctx, latestVitalsKey(wizard.PatientID), &latest)
	if err != nil {
		uc.Log.Warn("summaryUsecase.collectVitals error reading latest vitals",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingPatientIDKey, wizard.PatientID),
			zap.Error(err),
		)
		return record
	}
	if found {
		record.FillMissing(latest.Vitals)
	}
	return record
}

// claimQueueSubmission marks the snapshot as submitted. Only the caller that
// flips the flag sends the queue request.
func (uc *summaryUsecase) claimQueueSubmission(ctx context.Context, sessionID string, startedAt time.Time) (bool, error) {
	claimed := false
	_, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		claimed = false
		wizard := session.Wizard
		if wizard == nil || wizard.Closed || !wizard.StartedAt.Equal(startedAt) || wizard.QueueSubmitted {
			return nil
		}
		wizard.QueueSubmitted = true
		claimed = true
		return nil
	})
	return claimed, err
}

func (uc *summaryUsecase) releaseQueueSubmission(ctx context.Context, sessionID string, startedAt time.Time) {
	_, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		if session.Wizard != nil && session.Wizard.StartedAt.Equal(startedAt) {
			session.Wizard.QueueSubmitted = false
		}
		return nil
	})
	if err != nil {
		uc.Log.Warn("summaryUsecase.releaseQueueSubmission error",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
}

// lookupQueue polls the current queue a bounded number of times for the
// patient's entry.
func (uc *summaryUsecase) lookupQueue(ctx context.Context, patientID string) *models.QueueAssignment {
	requestID := utils.GetRequestID(ctx)

	for attempt := 1; attempt <= uc.lookupAttempts; attempt++ {
		entries, err := uc.BackendClient.CurrentQueue(ctx)
		if err != nil {
			uc.Log.Warn("summaryUsecase.lookupQueue error fetching queue",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(err),
			)
		}
		for _, entry := range entries {
			if entry.Patient.PatientID == patientID && entry.QueueNumber != "" {
				return entry.Assignment()
			}
		}

		if attempt == uc.lookupAttempts {
			break
		}
		timer := time.NewTimer(uc.lookupInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}

	uc.Log.Info("summaryUsecase.lookupQueue patient not in queue",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}
