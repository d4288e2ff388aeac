package triage

import (
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"fmt"
	"regexp"
	"strconv"
)

const (
	ReasonBradycardia  = "Bradycardia (HR < 50)"
	ReasonTachycardia  = "Tachycardia (HR > 100)"
	ReasonHypertension = "Hypertension (BP ≥ 140/90)"
	ReasonLowSpO2      = "Low SpO₂ (< 95%)"
	ReasonFever        = "Fever (Temp ≥ 38°C)"
)

var bloodPressurePattern = regexp.MustCompile(constvars.RegexBloodPressurePair)

// Input is the subset of a vitals snapshot the classifier looks at. Nil
// fields are skipped.
type Input struct {
	HeartRate     *float64
	SpO2          *float64
	Temperature   *float64
	BloodPressure *string
}

func InputFromRecord(record models.VitalsRecord) Input {
	input := Input{
		HeartRate:   record.HeartRate,
		SpO2:        record.SpO2,
		Temperature: record.Temperature,
	}
	if record.BloodPressure != "" {
		bp := record.BloodPressure
		input.BloodPressure = &bp
	}
	return input
}

// ParseBloodPressure finds the first "SYS/DIA" integer pair in value.
func ParseBloodPressure(value string) (systolic, diastolic int, ok bool) {
	match := bloodPressurePattern.FindStringSubmatch(value)
	if match == nil {
		return 0, 0, false
	}
	systolic, errSys := strconv.Atoi(match[1])
	diastolic, errDia := strconv.Atoi(match[2])
	if errSys != nil || errDia != nil {
		return 0, 0, false
	}
	return systolic, diastolic, true
}

// Classify applies the threshold rules in their fixed order. It never fails
// and Reasons is never nil.
func Classify(input Input) models.TriageResult {
	reasons := make([]string, 0, 5)

	if hr := input.HeartRate; hr != nil {
		if *hr < 50 {
			reasons = append(reasons, ReasonBradycardia)
		}
		if *hr > 100 {
			reasons = append(reasons, ReasonTachycardia)
		}
	}

	if input.BloodPressure != nil {
		if systolic, diastolic, ok := ParseBloodPressure(*input.BloodPressure); ok {
			if systolic >= 140 || diastolic >= 90 {
				reasons = append(reasons, ReasonHypertension)
			}
		}
	}

	if spo2 := input.SpO2; spo2 != nil && *spo2 < 95 {
		reasons = append(reasons, ReasonLowSpO2)
	}

	if temp := input.Temperature; temp != nil && *temp >= 38 {
		reasons = append(reasons, ReasonFever)
	}

	return models.TriageResult{
		Abnormal: len(reasons) > 0,
		Reasons:  reasons,
	}
}

// LocalPriority is the optimistic preview shown until the backend answers.
func LocalPriority(result models.TriageResult) string {
	if result.Abnormal {
		return constvars.PriorityPriority
	}
	return constvars.PriorityNormal
}

// FormatPriorityCode maps counter values 1, 2, ... onto E01..E99, wrapping
// back to E01 after E99.
func FormatPriorityCode(counter int64) string {
	if counter < 1 {
		counter = 1
	}
	return fmt.Sprintf("E%02d", ((counter-1)%99)+1)
}
