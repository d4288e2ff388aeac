package backend

import (
	"bytes"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// flexFloat accepts a JSON number, a numeric string or null. Anything that
// does not parse to a finite number decodes as absent.
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	f.Value = nil
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	f.Value = &value
	return nil
}

// flexString accepts a JSON string or a bare number such as a numeric id.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(value))
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

func (s flexString) String() string {
	return string(s)
}

func firstFloat(values ...flexFloat) *float64 {
	for _, value := range values {
		if value.Value != nil {
			return value.Value
		}
	}
	return nil
}

func firstString(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &parsed
		}
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Pin       string `json:"pin"`
	LoginType string `json:"login_type"`
	Username  string `json:"username,omitempty"`
}

type loginResponse struct {
	Role      string     `json:"role"`
	Name      string     `json:"name"`
	PatientID flexString `json:"patient_id"`
	StaffID   flexString `json:"staff_id"`
	ID        flexString `json:"id"`
}

func (r loginResponse) toModel() *models.LoginResult {
	result := &models.LoginResult{
		Role:      strings.ToLower(strings.TrimSpace(r.Role)),
		Name:      strings.TrimSpace(r.Name),
		PatientID: r.PatientID.String(),
		StaffID:   r.StaffID.String(),
	}
	if result.Role == constvars.KioskRoleStaff && result.StaffID == "" {
		result.StaffID = r.ID.String()
	}
	return result
}

type registerPatientRequest struct {
	FirstName     string `json:"first_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	LastName      string `json:"last_name"`
	Sex           string `json:"sex"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Username      string `json:"username"`
	Birthdate     string `json:"birthdate,omitempty"`
	Pin           string `json:"pin"`
}

func newRegisterPatientRequest(registration *models.PatientRegistration) registerPatientRequest {
	return registerPatientRequest{
		FirstName:     registration.FirstName,
		MiddleInitial: registration.MiddleInitial,
		LastName:      registration.LastName,
		Sex:           registration.Sex,
		Contact:       registration.ContactNumber,
		Address:       registration.Address,
		Username:      registration.Username,
		Birthdate:     registration.Birthdate,
		Pin:           registration.Pin,
	}
}

type patientDTO struct {
	ID            flexString `json:"id"`
	PatientID     flexString `json:"patient_id"`
	FirstName     string     `json:"first_name"`
	MiddleInitial string     `json:"middle_initial"`
	LastName      string     `json:"last_name"`
	Sex           string     `json:"sex"`
	Address       string     `json:"address"`
	Contact       string     `json:"contact"`
	ContactNumber string     `json:"contact_number"`
	Birthdate     string     `json:"birthdate"`
	DateOfBirth   string     `json:"date_of_birth"`
	Username      string     `json:"username"`
	LatestVitals  *vitalsDTO `json:"latest_vitals"`
}

func (p patientDTO) toModel() models.PatientProfile {
	return models.PatientProfile{
		PatientID:     firstString(p.PatientID.String(), p.ID.String()),
		FirstName:     strings.TrimSpace(p.FirstName),
		MiddleInitial: strings.TrimSpace(p.MiddleInitial),
		LastName:      strings.TrimSpace(p.LastName),
		Sex:           strings.TrimSpace(p.Sex),
		Address:       strings.TrimSpace(p.Address),
		ContactNumber: firstString(p.ContactNumber, p.Contact),
		DateOfBirth:   firstString(p.DateOfBirth, p.Birthdate),
		Username:      strings.TrimSpace(p.Username),
	}
}

// updatePatientRequest is sent as a PATCH, so only set fields are encoded.
type updatePatientRequest struct {
	FirstName     string `json:"first_name,omitempty"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Sex           string `json:"sex,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Address       string `json:"address,omitempty"`
	Birthdate     string `json:"birthdate,omitempty"`
	Pin           string `json:"pin,omitempty"`
}

func newUpdatePatientRequest(update *models.PatientUpdate) updatePatientRequest {
	return updatePatientRequest{
		FirstName:     update.FirstName,
		MiddleInitial: update.MiddleInitial,
		LastName:      update.LastName,
		Sex:           update.Sex,
		Contact:       update.ContactNumber,
		Address:       update.Address,
		Birthdate:     update.Birthdate,
		Pin:           update.Pin,
	}
}

type staffVitalsRequest struct {
	BloodPressure string `json:"blood_pressure"`
	Date          string `json:"date"`
}

// vitalsDTO absorbs every field name the backend has used for a vitals row.
type vitalsDTO struct {
	ID               flexString `json:"id"`
	PatientID        flexString `json:"patient_id"`
	Date             string     `json:"date"`
	DateTimeRecorded string     `json:"date_time_recorded"`
	RecordedAt       string     `json:"recorded_at"`
	HeartRate        flexFloat  `json:"heart_rate"`
	HR               flexFloat  `json:"hr"`
	PulseRate        flexFloat  `json:"pulse_rate"`
	OxygenSaturation flexFloat  `json:"oxygen_saturation"`
	SpO2             flexFloat  `json:"spo2"`
	Temperature      flexFloat  `json:"temperature"`
	Temp             flexFloat  `json:"temp"`
	Weight           flexFloat  `json:"weight"`
	WeightKg         flexFloat  `json:"weight_kg"`
	Height           flexFloat  `json:"height"`
	HeightCm         flexFloat  `json:"height_cm"`
	BloodPressure    flexString `json:"blood_pressure"`
	BP               flexString `json:"bp"`
	Systolic         flexFloat  `json:"systolic"`
	Diastolic        flexFloat  `json:"diastolic"`
	BMI              flexFloat  `json:"bmi"`
}

func (v vitalsDTO) bloodPressure() string {
	if bp := firstString(v.BloodPressure.String(), v.BP.String()); bp != "" {
		return bp
	}
	if v.Systolic.Value != nil && v.Diastolic.Value != nil {
		return fmt.Sprintf("%d/%d", int(math.Round(*v.Systolic.Value)), int(math.Round(*v.Diastolic.Value)))
	}
	return ""
}

func (v vitalsDTO) toModel(patientID string) models.VitalsRecord {
	record := models.VitalsRecord{
		ID:            v.ID.String(),
		PatientID:     firstString(v.PatientID.String(), patientID),
		WeightKg:      firstFloat(v.Weight, v.WeightKg),
		HeightCm:      firstFloat(v.Height, v.HeightCm),
		HeartRate:     firstFloat(v.HeartRate, v.HR, v.PulseRate),
		SpO2:          firstFloat(v.OxygenSaturation, v.SpO2),
		Temperature:   firstFloat(v.Temperature, v.Temp),
		BloodPressure: v.bloodPressure(),
		BMI:           v.BMI.Value,
		RecordedAt:    parseTimestamp(firstString(v.RecordedAt, v.DateTimeRecorded, v.Date)),
	}
	if record.BMI == nil {
		record.BMI = models.CalculateBMI(record.WeightKg, record.HeightCm)
	}
	return record
}

type patientVitalsResponse struct {
	Latest  *vitalsDTO  `json:"latest"`
	History []vitalsDTO `json:"history"`
}

type receiveVitalsRequest struct {
	ID               string   `json:"id,omitempty"`
	PatientID        string   `json:"patient_id"`
	Weight           *float64 `json:"weight,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	HeartRate        *float64 `json:"heart_rate,omitempty"`
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	BloodPressure    string   `json:"blood_pressure,omitempty"`
	Complete         bool     `json:"complete,omitempty"`
}

func newReceiveVitalsRequest(upsert *models.VitalsUpsert) receiveVitalsRequest {
	return receiveVitalsRequest{
		ID:               upsert.ID,
		PatientID:        upsert.PatientID,
		Weight:           upsert.WeightKg,
		Height:           upsert.HeightCm,
		HeartRate:        upsert.HeartRate,
		OxygenSaturation: upsert.SpO2,
		Temperature:      upsert.Temperature,
		BloodPressure:    upsert.BloodPressure,
		Complete:         upsert.Complete,
	}
}

type receiveVitalsResponse struct {
	ID   flexString `json:"id"`
	Data *struct {
		ID flexString `json:"id"`
	} `json:"data"`
}

func (r receiveVitalsResponse) recordID() string {
	if r.Data != nil && r.Data.ID != "" {
		return r.Data.ID.String()
	}
	return r.ID.String()
}

type queueVitalsPayload struct {
	HeightCm         *float64 `json:"height_cm"`
	WeightKg         *float64 `json:"weight_kg"`
	HeartRate        *float64 `json:"heart_rate"`
	BloodPressure    *string  `json:"blood_pressure"`
	OxygenSaturation *float64 `json:"oxygen_saturation"`
	Temperature      *float64 `json:"temperature"`
	BMI              *float64 `json:"bmi"`
}

type queueSubmissionRequest struct {
	PatientID       string             `json:"patient_id"`
	Vitals          queueVitalsPayload `json:"vitals"`
	Priority        string             `json:"priority"`
	PriorityCode    *string            `json:"priority_code"`
	PriorityReasons []string           `json:"priority_reasons"`
	QueueNumber     *string            `json:"queue_number"`
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func newQueueSubmissionRequest(submission *models.QueueSubmission) queueSubmissionRequest {
	reasons := submission.PriorityReasons
	if reasons == nil {
		reasons = []string{}
	}
	return queueSubmissionRequest{
		PatientID: submission.PatientID,
		Vitals: queueVitalsPayload{
			HeightCm:         submission.Vitals.HeightCm,
			WeightKg:         submission.Vitals.WeightKg,
			HeartRate:        submission.Vitals.HeartRate,
			BloodPressure:    optionalString(submission.Vitals.BloodPressure),
			OxygenSaturation: submission.Vitals.SpO2,
			Temperature:      submission.Vitals.Temperature,
			BMI:              submission.Vitals.BMI,
		},
		Priority:        submission.Priority,
		PriorityCode:    optionalString(submission.PriorityCode),
		PriorityReasons: reasons,
		QueueNumber:     optionalString(submission.QueueNumber),
	}
}

// queuePatient is either a nested patient object or a bare patient id.
type queuePatient struct {
	Profile *patientDTO
	ID      flexString
}

func (q *queuePatient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		q.Profile = new(patientDTO)
		return json.Unmarshal(trimmed, q.Profile)
	}
	return q.ID.UnmarshalJSON(trimmed)
}

type queueEntryDTO struct {
	ID             flexString   `json:"id"`
	QueueNumber    flexString   `json:"queue_number"`
	PriorityStatus string       `json:"priority_status"`
	Priority       string       `json:"priority"`
	PriorityCode   flexString   `json:"priority_code"`
	Status         string       `json:"status"`
	EnteredAt      string       `json:"entered_at"`
	PatientID      flexString   `json:"patient_id"`
	Patient        queuePatient `json:"patient"`
	LatestVitals   *vitalsDTO   `json:"latest_vitals"`
	Vitals         *vitalsDTO   `json:"vitals"`
}

// normalizePriority folds the backend's priority levels into NORMAL or
// PRIORITY. Empty means NORMAL.
func normalizePriority(values ...string) string {
	priority := strings.ToUpper(firstString(values...))
	if priority == "" || priority == constvars.PriorityNormal {
		return constvars.PriorityNormal
	}
	return constvars.PriorityPriority
}

func normalizeQueueStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return constvars.QueueStatusWaiting
	}
	return status
}

func (e queueEntryDTO) toModel() models.QueueEntry {
	entry := models.QueueEntry{
		ID:             e.ID.String(),
		QueueNumber:    e.QueueNumber.String(),
		PriorityStatus: normalizePriority(e.PriorityStatus, e.Priority),
		PriorityCode:   e.PriorityCode.String(),
		Status:         normalizeQueueStatus(e.Status),
		EnteredAt:      parseTimestamp(e.EnteredAt),
	}

	if e.Patient.Profile != nil {
		entry.Patient = e.Patient.Profile.toModel()
	}
	entry.Patient.PatientID = firstString(entry.Patient.PatientID, e.PatientID.String(), e.Patient.ID.String())

	vitals := e.LatestVitals
	if vitals == nil {
		vitals = e.Vitals
	}
	if vitals == nil && e.Patient.Profile != nil {
		vitals = e.Patient.Profile.LatestVitals
	}
	if vitals != nil {
		record := vitals.toModel(entry.Patient.PatientID)
		entry.LatestVitals = &record
	}
	return entry
}

func (e queueEntryDTO) toAssignment() *models.QueueAssignment {
	if e.QueueNumber == "" && e.PriorityStatus == "" && e.Priority == "" && e.PriorityCode == "" {
		return nil
	}
	return &models.QueueAssignment{
		QueueNumber:    e.QueueNumber.String(),
		PriorityStatus: normalizePriority(e.PriorityStatus, e.Priority),
		PriorityCode:   e.PriorityCode.String(),
	}
}

type printVitalsPayload struct {
	Weight        string `json:"weight"`
	Height        string `json:"height"`
	HeartRate     string `json:"heart_rate"`
	SpO2          string `json:"spo2"`
	Temperature   string `json:"temperature"`
	BloodPressure string `json:"blood_pressure"`
	BMI           string `json:"bmi"`
}

type printRequest struct {
	PatientID       string             `json:"patient_id"`
	PatientName     string             `json:"patient_name"`
	QueueNumber     string             `json:"queue_number"`
	Priority        string             `json:"priority"`
	PriorityCode    string             `json:"priority_code,omitempty"`
	PriorityReasons []string           `json:"priority_reasons"`
	Vitals          printVitalsPayload `json:"vitals"`
	PrintedAt       string             `json:"printed_at"`
}

type sensorResponse struct {
	vitalsDTO
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
