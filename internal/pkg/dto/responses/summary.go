package responses

type SummaryVitals struct {
	Weight        string `json:"weight"`
	Height        string `json:"height"`
	HeartRate     string `json:"heart_rate"`
	SpO2          string `json:"spo2"`
	Temperature   string `json:"temperature"`
	BloodPressure string `json:"blood_pressure"`
	BMI           string `json:"bmi"`
}

type Summary struct {
	PatientID    string        `json:"patient_id"`
	PatientName  string        `json:"patient_name"`
	Vitals       SummaryVitals `json:"vitals"`
	Triage       Triage        `json:"triage"`
	QueueNumber  string        `json:"queue_number"`
	Priority     string        `json:"priority"`
	PriorityCode string        `json:"priority_code,omitempty"`
	Provisional  bool          `json:"provisional"`
	Next         string        `json:"next"`
}

type Print struct {
	Printed bool   `json:"printed"`
	Message string `json:"message,omitempty"`
	Next    string `json:"next"`
}
