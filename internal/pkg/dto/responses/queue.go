package responses

import "time"

type QueueEntry struct {
	ID             string        `json:"id"`
	QueueNumber    string        `json:"queue_number"`
	PriorityStatus string        `json:"priority_status"`
	PriorityCode   string        `json:"priority_code,omitempty"`
	Status         string        `json:"status"`
	PatientID      string        `json:"patient_id"`
	PatientName    string        `json:"patient_name"`
	Sex            string        `json:"sex,omitempty"`
	Age            int           `json:"age,omitempty"`
	EnteredAt      *time.Time    `json:"entered_at,omitempty"`
	Vitals         SummaryVitals `json:"vitals"`
}

type QueueBoard struct {
	NowServing  *QueueEntry  `json:"now_serving"`
	Entries     []QueueEntry `json:"entries"`
	Total       int          `json:"total"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}
