package wizard

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/core/triage"
	"esperanza-kiosk/internal/app/services/shared/metrics"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// An acquisition older than the sensor timeout plus this margin belongs to a
// request that never came back.
const staleAcquisitionMargin = 15 * time.Second

type wizardUsecase struct {
	SessionStore          contracts.SessionStore
	BackendClient         contracts.BackendClient
	SensorClient          contracts.SensorClient
	PriorityCodeGenerator contracts.PriorityCodeGenerator
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	staleAfter            time.Duration
	now                   func() time.Time
}

func NewWizardUsecase(
	sessionStore contracts.SessionStore,
	backendClient contracts.BackendClient,
	sensorClient contracts.SensorClient,
	priorityCodeGenerator contracts.PriorityCodeGenerator,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WizardUsecase {
	return &wizardUsecase{
		SessionStore:          sessionStore,
		BackendClient:         backendClient,
		SensorClient:          sensorClient,
		PriorityCodeGenerator: priorityCodeGenerator,
		InternalConfig:        internalConfig,
		Log:                   logger,
		staleAfter:            time.Duration(internalConfig.Backend.SensorTimeoutInSecs)*time.Second + staleAcquisitionMargin,
		now:                   time.Now,
	}
}

// saveTarget pins a backend save to the snapshot and step generation it was
// taken from.
type saveTarget struct {
	step       *stepDefinition
	generation int64
	startedAt  time.Time
	upsert     *models.VitalsUpsert
}

func (uc *wizardUsecase) GetOverview(ctx context.Context, sessionID string) (*responses.WizardOverview, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.GetOverview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		uc.Log.Error("wizardUsecase.GetOverview error getting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	wizard, err := openWizard(session, uc.now())
	if err != nil {
		return nil, err
	}

	overview := &responses.WizardOverview{
		PatientID:  wizard.PatientID,
		ActiveStep: wizard.ActiveStep,
		Completed:  wizard.Completed,
		Steps:      make([]responses.WizardStep, 0, len(wizardSteps)),
	}
	for i := range wizardSteps {
		overview.Steps = append(overview.Steps, buildStepView(i, &wizardSteps[i], wizard))
	}
	return overview, nil
}

func (uc *wizardUsecase) GetStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.GetStep called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStepKey, step),
	)

	index, definition, ok := findStep(step)
	if !ok {
		return nil, exceptions.ErrUnknownStep(nil, step)
	}

	session, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		now := uc.now()
		wizard, err := openWizard(session, now)
		if err != nil {
			return err
		}
		if wizard.ReleaseStaleAcquisition(step, now, uc.staleAfter) {
			metrics.RecordAcquisition(step, metrics.ResultDropped)
		}
		wizard.Activate(step, now)
		return nil
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.GetStep error updating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		return nil, err
	}

	view := buildStepView(index, definition, session.Wizard)
	return &view, nil
}

// StartStep runs one acquisition for a sensor step. The reading is applied only
// while the step is still active with the same generation, so a late answer
// after the user moved on is dropped.
func (uc *wizardUsecase) StartStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.StartStep called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStepKey, step),
	)

	index, definition, ok := findStep(step)
	if !ok {
		return nil, exceptions.ErrUnknownStep(nil, step)
	}
	if !definition.hasSensor() {
		return nil, exceptions.ErrStepHasNoSensor(nil, step)
	}

	var (
		generation int64
		startedAt  time.Time
	)
	_, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		now := uc.now()
		wizard, err := openWizard(session, now)
		if err != nil {
			return err
		}
		wizard.ReleaseStaleAcquisition(step, now, uc.staleAfter)
		generation, err = wizard.BeginAcquisition(step, now)
		if errors.Is(err, models.ErrStepAcquiring) {
			return exceptions.ErrStepBusy(err, step)
		}
		startedAt = wizard.StartedAt
		return err
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.StartStep error beginning acquisition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		return nil, err
	}

	reading, err := definition.fetch(ctx, uc.SensorClient)
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.RecordAcquisition(step, metrics.ResultDropped)
		uc.Log.Warn("wizardUsecase.StartStep request ended before the reading arrived",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Int64(constvars.LoggingGenerationKey, generation),
			zap.Error(ctxErr),
		)
		return nil, ctxErr
	}
	if err != nil {
		uc.Log.Error("wizardUsecase.StartStep error calling sensor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
	}
	if reading == nil {
		reading = &models.SensorReading{}
	}

	primary := definition.metrics[0].read(reading)
	acquired := usable(primary)
	failure := reading.Error
	if failure == "" {
		failure = definition.fallback
	}

	var (
		dropped bool
		target  *saveTarget
	)
	session, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		dropped, target = false, nil
		wizard := session.Wizard
		if wizard == nil || !wizard.StartedAt.Equal(startedAt) || !wizard.AcceptsResult(step, generation) {
			dropped = true
			return nil
		}

		now := uc.now()
		if !acquired {
			wizard.MarkStepFailed(step, failure, now)
			return nil
		}
		for _, metric := range definition.metrics {
			if value := metric.read(reading); usable(value) {
				wizard.SetMetric(metric.name, *value, now)
			}
		}
		wizard.MarkStepReady(step, now)
		target = &saveTarget{
			step:       definition,
			generation: generation,
			startedAt:  startedAt,
			upsert:     buildUpsert(definition, wizard),
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.StartStep error applying reading",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Error(err),
		)
		return nil, err
	}

	switch {
	case dropped:
		metrics.RecordAcquisition(step, metrics.ResultDropped)
		uc.Log.Info("wizardUsecase.StartStep dropped late reading",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.Int64(constvars.LoggingGenerationKey, generation),
		)
	case !acquired:
		metrics.RecordAcquisition(step, metrics.ResultFailed)
		uc.Log.Warn("wizardUsecase.StartStep acquisition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, step),
			zap.String(constvars.LoggingErrorMessageKey, failure),
		)
	default:
		metrics.RecordAcquisition(step, metrics.ResultReady)
		saved, err := uc.save(ctx, sessionID, target)
		if err != nil {
			return nil, err
		}
		if saved != nil {
			session = saved
		}
	}

	view := buildStepView(index, definition, session.Wizard)
	return &view, nil
}

func (uc *wizardUsecase) SubmitBloodPressure(ctx context.Context, sessionID string, request *requests.SubmitBloodPressure) (*responses.WizardStep, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.SubmitBloodPressure called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	index, definition, _ := findStep(constvars.StepBloodPressure)

	var target *saveTarget
	session, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		now := uc.now()
		wizard, err := openWizard(session, now)
		if err != nil {
			return err
		}
		wizard.Activate(definition.slug, now)
		wizard.SetBloodPressure(request.Systolic, request.Diastolic, now)
		state := wizard.Step(definition.slug)
		state.Generation++
		state.SaveStatus = models.SaveNone
		state.SaveError = ""
		wizard.MarkStepReady(definition.slug, now)

		target = &saveTarget{
			step:       definition,
			generation: state.Generation,
			startedAt:  wizard.StartedAt,
			upsert:     buildUpsert(definition, wizard),
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.SubmitBloodPressure error updating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	saved, err := uc.save(ctx, sessionID, target)
	if err != nil {
		return nil, err
	}
	if saved != nil {
		session = saved
	}

	view := buildStepView(index, definition, session.Wizard)
	return &view, nil
}

func (uc *wizardUsecase) RetrySave(ctx context.Context, sessionID, step string) (*responses.WizardStep, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.RetrySave called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStepKey, step),
	)

	index, definition, ok := findStep(step)
	if !ok {
		return nil, exceptions.ErrUnknownStep(nil, step)
	}

	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	wizard, err := openWizard(session, uc.now())
	if err != nil {
		return nil, err
	}

	state := wizard.Step(step)
	if state.Status != models.StepReady {
		return nil, exceptions.ErrStepNotReady(nil, step)
	}
	if state.SaveStatus == models.SaveSaved {
		view := buildStepView(index, definition, wizard)
		return &view, nil
	}

	saved, err := uc.save(ctx, sessionID, &saveTarget{
		step:       definition,
		generation: state.Generation,
		startedAt:  wizard.StartedAt,
		upsert:     buildUpsert(definition, wizard),
	})
	if err != nil {
		return nil, err
	}
	if saved != nil {
		session = saved
	}

	view := buildStepView(index, definition, session.Wizard)
	return &view, nil
}

// Continue returns the route after step. Leaving blood pressure classifies
// the whole snapshot and stores the preview priority for the summary.
func (uc *wizardUsecase) Continue(ctx context.Context, sessionID, step string) (*responses.WizardContinue, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.Continue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStepKey, step),
	)

	index, definition, ok := findStep(step)
	if !ok {
		return nil, exceptions.ErrUnknownStep(nil, step)
	}
	result := &responses.WizardContinue{Next: nextRoute(index)}
	if !definition.isBloodPressure() {
		return result, nil
	}

	session, err := uc.SessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	wizard, err := openWizard(session, uc.now())
	if err != nil {
		return nil, err
	}

	classification := triage.Classify(triage.InputFromRecord(wizard.Snapshot()))
	priority := triage.LocalPriority(classification)
	priorityCode := ""
	if classification.Abnormal {
		priorityCode = wizard.PriorityCode
		if priorityCode == "" {
			priorityCode, err = uc.PriorityCodeGenerator.Next(ctx, sessionID)
			if err != nil {
				uc.Log.Warn("wizardUsecase.Continue error generating priority code",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				priorityCode = ""
			}
		}
	}
	metrics.RecordTriage(priority)

	startedAt := wizard.StartedAt
	_, err = uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		wizard := session.Wizard
		if wizard == nil || wizard.Closed || !wizard.StartedAt.Equal(startedAt) {
			return nil
		}
		wizard.Triage = &classification
		wizard.Priority = priority
		wizard.PriorityCode = priorityCode
		return nil
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.Continue error storing triage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("wizardUsecase.Continue classified snapshot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPriorityKey, priority),
		zap.String(constvars.LoggingPriorityCodeKey, priorityCode),
		zap.Strings(constvars.LoggingReasonsKey, classification.Reasons),
	)

	result.Triage = &responses.Triage{Abnormal: classification.Abnormal, Reasons: classification.Reasons}
	result.Priority = priority
	result.PriorityCode = priorityCode
	return result, nil
}

// save upserts the step's readings and records the outcome on the step. A
// save whose request was cancelled writes nothing and returns a nil session.
func (uc *wizardUsecase) save(ctx context.Context, sessionID string, target *saveTarget) (*models.KioskSession, error) {
	requestID := utils.GetRequestID(ctx)
	slug := target.step.slug

	recordID, saveErr := uc.BackendClient.SaveVitals(ctx, target.upsert)
	metrics.RecordVitalsSave(slug, saveErr)
	if ctx.Err() != nil {
		return nil, nil
	}
	if saveErr != nil {
		uc.Log.Error("wizardUsecase.save error saving vitals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, slug),
			zap.String(constvars.LoggingPatientIDKey, target.upsert.PatientID),
			zap.Error(saveErr),
		)
	}

	session, err := uc.SessionStore.Update(ctx, sessionID, func(session *models.KioskSession) error {
		wizard := session.Wizard
		if wizard == nil || wizard.Closed || !wizard.StartedAt.Equal(target.startedAt) {
			return nil
		}
		if saveErr == nil {
			wizard.SetVitalRecordID(recordID)
		}
		state := wizard.Step(slug)
		if state.Generation != target.generation || state.Status != models.StepReady {
			return nil
		}
		wizard.MarkSaveResult(slug, clientError(saveErr), uc.now())
		if saveErr == nil && target.upsert.Complete {
			wizard.Completed = true
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("wizardUsecase.save error recording save result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStepKey, slug),
			zap.Error(err),
		)
		return nil, err
	}
	return session, nil
}

func openWizard(session *models.KioskSession, now time.Time) (*models.WizardSession, error) {
	wizard := session.CurrentWizard(now)
	if _, err := wizard.GetPatientID(); err != nil {
		return nil, exceptions.ErrPatientIdentityMissing(err)
	}
	return wizard, nil
}

func buildUpsert(definition *stepDefinition, wizard *models.WizardSession) *models.VitalsUpsert {
	upsert := &models.VitalsUpsert{
		ID:        wizard.VitalID,
		PatientID: wizard.PatientID,
	}
	for _, metric := range definition.metrics {
		metric.assign(upsert, wizard.MetricPtr(metric.name))
	}
	if definition.isBloodPressure() {
		upsert.BloodPressure, _ = wizard.BloodPressureString()
		upsert.Complete = true
	}
	return upsert
}

// clientError keeps only the message that is safe to show on the kiosk.
func clientError(err error) error {
	if err == nil {
		return nil
	}
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) && customErr.ClientMessage != "" {
		return errors.New(customErr.ClientMessage)
	}
	return errors.New(constvars.ErrClientBackendUnavailable)
}

func buildStepView(index int, definition *stepDefinition, wizard *models.WizardSession) responses.WizardStep {
	if wizard == nil {
		wizard = models.NewWizardSession("", time.Time{})
	}
	state := wizard.Step(definition.slug)
	view := responses.WizardStep{
		Step:       definition.slug,
		Title:      definition.title,
		Index:      index + 1,
		Total:      len(wizardSteps),
		State:      string(state.Status),
		HasSensor:  definition.hasSensor(),
		Readings:   make([]responses.ReadingView, 0, len(definition.metrics)+1),
		Error:      state.Error,
		SaveStatus: string(state.SaveStatus),
		SaveError:  state.SaveError,
		CanProceed: state.Status == models.StepReady,
		Route:      definition.route,
		Next:       nextRoute(index),
	}

	for _, metric := range definition.metrics {
		value := wizard.MetricPtr(metric.name)
		view.Readings = append(view.Readings, responses.ReadingView{
			Metric:  string(metric.name),
			Label:   metric.label,
			Unit:    metric.unit,
			Value:   value,
			Display: utils.FormatMeasurement(value, metric.decimals, metric.unit),
		})
	}
	if definition.isBloodPressure() {
		display, ok := wizard.BloodPressureString()
		if !ok {
			display = constvars.PlaceholderMissingValue
		}
		view.Readings = append(view.Readings, responses.ReadingView{
			Metric:  "blood_pressure",
			Label:   "Blood Pressure",
			Unit:    "mmHg",
			Display: display,
		})
	}
	return view
}
