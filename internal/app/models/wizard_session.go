package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrPatientIdentityMissing = errors.New("patient identity missing from wizard session")
	ErrStepAcquiring          = errors.New("step is already acquiring")
	ErrMeasurementInterrupted = errors.New("measurement interrupted, please try again")
)

type MetricName string

const (
	MetricWeightKg     MetricName = "weight_kg"
	MetricHeightCm     MetricName = "height_cm"
	MetricPulseBpm     MetricName = "pulse_bpm"
	MetricSpO2Percent  MetricName = "spo2_percent"
	MetricTemperatureC MetricName = "temperature_c"
)

type Reading struct {
	Value      float64   `json:"value"`
	CapturedAt time.Time `json:"captured_at"`
}

type BloodPressure struct {
	Systolic   int       `json:"systolic"`
	Diastolic  int       `json:"diastolic"`
	CapturedAt time.Time `json:"captured_at"`
}

// String renders the "SYS/DIA" form used on screen and on the wire.
func (bp BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", bp.Systolic, bp.Diastolic)
}

type StepStatus string

const (
	StepIdle      StepStatus = "idle"
	StepAcquiring StepStatus = "acquiring"
	StepReady     StepStatus = "ready"
	StepFailed    StepStatus = "failed"
)

type SaveStatus string

const (
	SaveNone   SaveStatus = ""
	SaveSaved  SaveStatus = "saved"
	SaveFailed SaveStatus = "failed"
)

type StepState struct {
	Status     StepStatus `json:"status"`
	Generation int64      `json:"generation"`
	Error      string     `json:"error,omitempty"`
	SaveStatus SaveStatus `json:"save_status,omitempty"`
	SaveError  string     `json:"save_error,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// WizardSession is the vitals snapshot accumulated across the wizard steps of
// one kiosk session. It is stored as part of KioskSession.
type WizardSession struct {
	PatientID      string                 `json:"patient_id"`
	VitalID        string                 `json:"vital_id,omitempty"`
	Readings       map[MetricName]Reading `json:"readings"`
	BloodPressure  *BloodPressure         `json:"blood_pressure,omitempty"`
	Steps          map[string]*StepState  `json:"steps"`
	ActiveStep     string                 `json:"active_step,omitempty"`
	Triage         *TriageResult          `json:"triage,omitempty"`
	Priority       string                 `json:"priority,omitempty"`
	PriorityCode   string                 `json:"priority_code,omitempty"`
	Completed      bool                   `json:"completed"`
	QueueSubmitted bool                   `json:"queue_submitted"`
	Queue          *QueueAssignment       `json:"queue,omitempty"`
	Closed         bool                   `json:"closed"`
	StartedAt      time.Time              `json:"started_at"`
}

func NewWizardSession(patientID string, now time.Time) *WizardSession {
	return &WizardSession{
		PatientID: patientID,
		Readings:  make(map[MetricName]Reading),
		Steps:     make(map[string]*StepState),
		StartedAt: now,
	}
}

func (w *WizardSession) GetPatientID() (string, error) {
	if w == nil || w.PatientID == "" {
		return "", ErrPatientIdentityMissing
	}
	return w.PatientID, nil
}

func (w *WizardSession) GetVitalRecordID() (string, bool) {
	if w == nil || w.VitalID == "" {
		return "", false
	}
	return w.VitalID, true
}

// SetVitalRecordID adopts the backend record id. Empty ids are ignored and
// the last non-empty write wins.
func (w *WizardSession) SetVitalRecordID(id string) {
	if id == "" {
		return
	}
	w.VitalID = id
}

func (w *WizardSession) SetMetric(name MetricName, value float64, capturedAt time.Time) {
	if w.Readings == nil {
		w.Readings = make(map[MetricName]Reading)
	}
	w.Readings[name] = Reading{Value: value, CapturedAt: capturedAt}
}

func (w *WizardSession) GetMetric(name MetricName) (float64, bool) {
	if w == nil {
		return 0, false
	}
	reading, ok := w.Readings[name]
	if !ok || math.IsNaN(reading.Value) || math.IsInf(reading.Value, 0) {
		return 0, false
	}
	return reading.Value, true
}

// MetricPtr is GetMetric shaped for optional fields.
func (w *WizardSession) MetricPtr(name MetricName) *float64 {
	value, ok := w.GetMetric(name)
	if !ok {
		return nil
	}
	return &value
}

func (w *WizardSession) SetBloodPressure(systolic, diastolic int, capturedAt time.Time) {
	w.BloodPressure = &BloodPressure{Systolic: systolic, Diastolic: diastolic, CapturedAt: capturedAt}
}

func (w *WizardSession) BloodPressureString() (string, bool) {
	if w == nil || w.BloodPressure == nil {
		return "", false
	}
	return w.BloodPressure.String(), true
}

// Step returns the state of the given step, creating an idle one on first use.
func (w *WizardSession) Step(slug string) *StepState {
	if w.Steps == nil {
		w.Steps = make(map[string]*StepState)
	}
	state, ok := w.Steps[slug]
	if !ok {
		state = &StepState{Status: StepIdle}
		w.Steps[slug] = state
	}
	return state
}

// BeginAcquisition moves slug to acquiring, makes it the active step and
// returns the new generation that a later result must present.
func (w *WizardSession) BeginAcquisition(slug string, now time.Time) (int64, error) {
	state := w.Step(slug)
	if state.Status == StepAcquiring {
		return state.Generation, ErrStepAcquiring
	}
	state.Generation++
	state.Status = StepAcquiring
	state.Error = ""
	state.SaveStatus = SaveNone
	state.SaveError = ""
	state.UpdatedAt = now
	w.Activate(slug, now)
	return state.Generation, nil
}

// Activate makes slug the active step. A step left while acquiring goes back
// to idle so its late result is dropped and it can be started again.
func (w *WizardSession) Activate(slug string, now time.Time) {
	if w.ActiveStep == slug {
		return
	}
	if previous, ok := w.Steps[w.ActiveStep]; ok && previous.Status == StepAcquiring {
		previous.Status = StepIdle
		previous.UpdatedAt = now
	}
	w.ActiveStep = slug
}

// ReleaseStaleAcquisition fails slug when it has been acquiring for longer
// than staleAfter, which happens when the request that started it died
// before writing a result.
func (w *WizardSession) ReleaseStaleAcquisition(slug string, now time.Time, staleAfter time.Duration) bool {
	state, ok := w.Steps[slug]
	if !ok || state.Status != StepAcquiring {
		return false
	}
	if now.Sub(state.UpdatedAt) < staleAfter {
		return false
	}
	state.Status = StepFailed
	state.Error = ErrMeasurementInterrupted.Error()
	state.UpdatedAt = now
	return true
}

// AcceptsResult reports whether a measurement started at generation may
// still be applied to slug.
func (w *WizardSession) AcceptsResult(slug string, generation int64) bool {
	if w.Closed || w.ActiveStep != slug {
		return false
	}
	state, ok := w.Steps[slug]
	return ok && state.Status == StepAcquiring && state.Generation == generation
}

func (w *WizardSession) MarkStepReady(slug string, now time.Time) {
	state := w.Step(slug)
	state.Status = StepReady
	state.Error = ""
	state.UpdatedAt = now
}

func (w *WizardSession) MarkStepFailed(slug, message string, now time.Time) {
	state := w.Step(slug)
	state.Status = StepFailed
	state.Error = message
	state.UpdatedAt = now
}

func (w *WizardSession) MarkSaveResult(slug string, saveErr error, now time.Time) {
	state := w.Step(slug)
	if saveErr != nil {
		state.SaveStatus = SaveFailed
		state.SaveError = saveErr.Error()
	} else {
		state.SaveStatus = SaveSaved
		state.SaveError = ""
	}
	state.UpdatedAt = now
}

// Snapshot collects the accumulated readings into the record shape shared
// with the backend.
func (w *WizardSession) Snapshot() VitalsRecord {
	record := VitalsRecord{
		ID:          w.VitalID,
		PatientID:   w.PatientID,
		WeightKg:    w.MetricPtr(MetricWeightKg),
		HeightCm:    w.MetricPtr(MetricHeightCm),
		HeartRate:   w.MetricPtr(MetricPulseBpm),
		SpO2:        w.MetricPtr(MetricSpO2Percent),
		Temperature: w.MetricPtr(MetricTemperatureC),
	}
	if bp, ok := w.BloodPressureString(); ok {
		record.BloodPressure = bp
	}
	record.BMI = CalculateBMI(record.WeightKg, record.HeightCm)
	return record
}
