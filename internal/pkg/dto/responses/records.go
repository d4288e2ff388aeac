package responses

import "time"

type PatientProfile struct {
	PatientID     string `json:"patient_id"`
	Name          string `json:"name"`
	Username      string `json:"username,omitempty"`
	Sex           string `json:"sex"`
	Age           int    `json:"age"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type VitalsRow struct {
	ID         string        `json:"id,omitempty"`
	RecordedAt *time.Time    `json:"recorded_at,omitempty"`
	Vitals     SummaryVitals `json:"vitals"`
}

type Records struct {
	Profile PatientProfile `json:"profile"`
	Latest  *VitalsRow     `json:"latest"`
	History []VitalsRow    `json:"history"`
}

type PatientList struct {
	Patients []PatientProfile `json:"patients"`
	Count    int              `json:"count"`
}

type StaffDashboard struct {
	StaffID     string      `json:"staff_id"`
	Name        string      `json:"name"`
	QueueLength int         `json:"queue_length"`
	NowServing  *QueueEntry `json:"now_serving"`
}
