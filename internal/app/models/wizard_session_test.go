package models

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func TestWizardSession_PatientIdentity(t *testing.T) {
	t.Run("Missing Patient", func(t *testing.T) {
		wizard := NewWizardSession("", testNow)

		_, err := wizard.GetPatientID()
		assert.ErrorIs(t, err, ErrPatientIdentityMissing)
	})

	t.Run("Nil Wizard", func(t *testing.T) {
		var wizard *WizardSession

		_, err := wizard.GetPatientID()
		assert.ErrorIs(t, err, ErrPatientIdentityMissing)
	})

	t.Run("Present Patient", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)

		patientID, err := wizard.GetPatientID()
		require.NoError(t, err)
		assert.Equal(t, "P-001", patientID)
	})
}

func TestWizardSession_VitalRecordID(t *testing.T) {
	wizard := NewWizardSession("P-001", testNow)

	_, ok := wizard.GetVitalRecordID()
	assert.False(t, ok, "fresh snapshot has no record id")

	wizard.SetVitalRecordID("V-1")
	wizard.SetVitalRecordID("V-1")
	id, ok := wizard.GetVitalRecordID()
	assert.True(t, ok)
	assert.Equal(t, "V-1", id, "setting the same id twice is a no-op")

	wizard.SetVitalRecordID("")
	id, _ = wizard.GetVitalRecordID()
	assert.Equal(t, "V-1", id, "empty id is ignored")

	wizard.SetVitalRecordID("V-2")
	id, _ = wizard.GetVitalRecordID()
	assert.Equal(t, "V-2", id, "last write wins")
}

func TestWizardSession_Metrics(t *testing.T) {
	wizard := NewWizardSession("P-001", testNow)

	_, ok := wizard.GetMetric(MetricWeightKg)
	assert.False(t, ok)

	wizard.SetMetric(MetricWeightKg, 70, testNow)
	wizard.SetMetric(MetricHeightCm, 175, testNow)
	wizard.SetMetric(MetricTemperatureC, math.NaN(), testNow)

	weight, ok := wizard.GetMetric(MetricWeightKg)
	assert.True(t, ok)
	assert.Equal(t, 70.0, weight)

	_, ok = wizard.GetMetric(MetricTemperatureC)
	assert.False(t, ok, "non-finite readings are treated as absent")

	wizard.SetBloodPressure(120, 80, testNow)
	bp, ok := wizard.BloodPressureString()
	assert.True(t, ok)
	assert.Equal(t, "120/80", bp)

	snapshot := wizard.Snapshot()
	require.NotNil(t, snapshot.BMI)
	assert.InDelta(t, 22.857, *snapshot.BMI, 0.001)
	assert.Nil(t, snapshot.Temperature)
	assert.Equal(t, "120/80", snapshot.BloodPressure)
}

func TestWizardSession_AcquisitionGuard(t *testing.T) {
	t.Run("Busy Step Rejects Second Start", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)

		generation, err := wizard.BeginAcquisition("weight", testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(1), generation)

		_, err = wizard.BeginAcquisition("weight", testNow)
		assert.ErrorIs(t, err, ErrStepAcquiring)
	})

	t.Run("Result Accepted For Current Generation", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)
		generation, _ := wizard.BeginAcquisition("weight", testNow)

		assert.True(t, wizard.AcceptsResult("weight", generation))
	})

	t.Run("Late Result Dropped After Navigating Away", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)
		generation, _ := wizard.BeginAcquisition("weight", testNow)

		_, err := wizard.BeginAcquisition("height", testNow)
		require.NoError(t, err)

		assert.False(t, wizard.AcceptsResult("weight", generation))
	})

	t.Run("Stale Generation Dropped", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)
		first, _ := wizard.BeginAcquisition("weight", testNow)
		wizard.MarkStepFailed("weight", "scale offline", testNow)
		second, _ := wizard.BeginAcquisition("weight", testNow)

		assert.False(t, wizard.AcceptsResult("weight", first))
		assert.True(t, wizard.AcceptsResult("weight", second))
	})

	t.Run("Closed Snapshot Accepts Nothing", func(t *testing.T) {
		wizard := NewWizardSession("P-001", testNow)
		generation, _ := wizard.BeginAcquisition("weight", testNow)
		wizard.Closed = true

		assert.False(t, wizard.AcceptsResult("weight", generation))
	})
}

func TestWizardSession_Activate(t *testing.T) {
	wizard := NewWizardSession("P-001", testNow)
	generation, _ := wizard.BeginAcquisition("weight", testNow)

	wizard.Activate("weight", testNow)
	assert.Equal(t, StepAcquiring, wizard.Step("weight").Status, "re-activating the same step keeps it busy")

	wizard.Activate("height", testNow)
	assert.Equal(t, "height", wizard.ActiveStep)
	assert.Equal(t, StepIdle, wizard.Step("weight").Status)
	assert.False(t, wizard.AcceptsResult("weight", generation))

	_, err := wizard.BeginAcquisition("weight", testNow)
	assert.NoError(t, err, "an abandoned step can be started again")
}

func TestWizardSession_ReleaseStaleAcquisition(t *testing.T) {
	wizard := NewWizardSession("P-001", testNow)
	_, _ = wizard.BeginAcquisition("pulse", testNow)

	assert.False(t, wizard.ReleaseStaleAcquisition("pulse", testNow.Add(10*time.Second), time.Minute))
	assert.Equal(t, StepAcquiring, wizard.Step("pulse").Status)

	assert.True(t, wizard.ReleaseStaleAcquisition("pulse", testNow.Add(2*time.Minute), time.Minute))
	state := wizard.Step("pulse")
	assert.Equal(t, StepFailed, state.Status)
	assert.Equal(t, ErrMeasurementInterrupted.Error(), state.Error)

	assert.False(t, wizard.ReleaseStaleAcquisition("height", testNow.Add(2*time.Minute), time.Minute), "unknown step")
}

func TestWizardSession_SaveResult(t *testing.T) {
	wizard := NewWizardSession("P-001", testNow)
	wizard.MarkStepReady("weight", testNow)

	wizard.MarkSaveResult("weight", assert.AnError, testNow)
	state := wizard.Step("weight")
	assert.Equal(t, StepReady, state.Status, "a failed save keeps the reading")
	assert.Equal(t, SaveFailed, state.SaveStatus)
	assert.NotEmpty(t, state.SaveError)

	wizard.MarkSaveResult("weight", nil, testNow)
	assert.Equal(t, SaveSaved, state.SaveStatus)
	assert.Empty(t, state.SaveError)
}

func TestKioskSession_CurrentWizard(t *testing.T) {
	session := NewKioskSession("S-1", "msantos", &LoginResult{
		Role:      constvars.KioskRolePatient,
		Name:      "Maria Santos",
		PatientID: "P-001",
	}, testNow)

	first := session.CurrentWizard(testNow)
	assert.Equal(t, "P-001", first.PatientID)
	assert.Same(t, first, session.CurrentWizard(testNow), "one snapshot per session while open")

	first.SetVitalRecordID("V-1")
	first.Closed = true

	second := session.CurrentWizard(testNow)
	assert.NotSame(t, first, second, "a closed snapshot is replaced")
	_, ok := second.GetVitalRecordID()
	assert.False(t, ok)
	assert.Equal(t, "P-001", second.PatientID)
}

func TestCalculateBMI(t *testing.T) {
	weight := 70.0
	height := 175.0
	zero := 0.0
	negative := -170.0
	inf := math.Inf(1)

	bmi := CalculateBMI(&weight, &height)
	require.NotNil(t, bmi)
	assert.InDelta(t, 22.857, *bmi, 0.001)

	assert.Nil(t, CalculateBMI(&weight, &zero))
	assert.Nil(t, CalculateBMI(&weight, &negative))
	assert.Nil(t, CalculateBMI(&weight, &inf), "infinite height is unusable")
	assert.Nil(t, CalculateBMI(nil, &height))
	assert.Nil(t, CalculateBMI(&weight, nil))
}

func TestVitalsRecord_FillMissing(t *testing.T) {
	weight, height, oldWeight, pulse := 70.0, 175.0, 90.0, 80.0
	record := VitalsRecord{WeightKg: &weight}
	assert.False(t, record.IsComplete())

	record.FillMissing(VitalsRecord{WeightKg: &oldWeight, HeightCm: &height, HeartRate: &pulse, BloodPressure: "118/76"})

	assert.Equal(t, 70.0, *record.WeightKg, "current readings win")
	assert.Equal(t, 175.0, *record.HeightCm)
	assert.Equal(t, 80.0, *record.HeartRate)
	assert.Equal(t, "118/76", record.BloodPressure)
	assert.Nil(t, record.Temperature)
	require.NotNil(t, record.BMI)
	assert.InDelta(t, 22.857, *record.BMI, 0.001)
}
