package models

import "time"

// QueueAssignment is the backend's answer for a patient's place in the queue.
type QueueAssignment struct {
	QueueNumber    string `json:"queue_number"`
	PriorityStatus string `json:"priority_status"`
	PriorityCode   string `json:"priority_code,omitempty"`
}

type QueueEntry struct {
	ID             string
	QueueNumber    string
	PriorityStatus string
	PriorityCode   string
	Status         string
	EnteredAt      *time.Time
	Patient        PatientProfile
	LatestVitals   *VitalsRecord
}

func (e QueueEntry) Assignment() *QueueAssignment {
	return &QueueAssignment{
		QueueNumber:    e.QueueNumber,
		PriorityStatus: e.PriorityStatus,
		PriorityCode:   e.PriorityCode,
	}
}

type QueueSubmission struct {
	PatientID       string
	Vitals          VitalsRecord
	Priority        string
	PriorityCode    string
	PriorityReasons []string
	QueueNumber     string
}

type PrintReceipt struct {
	PatientID    string
	PatientName  string
	QueueNumber  string
	Priority     string
	PriorityCode string
	Reasons      []string
	Vitals       VitalsRecord
	PrintedAt    time.Time
}
