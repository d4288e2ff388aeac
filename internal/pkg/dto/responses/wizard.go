package responses

type ReadingView struct {
	Metric  string   `json:"metric"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

type WizardStep struct {
	Step       string        `json:"step"`
	Title      string        `json:"title"`
	Index      int           `json:"index"`
	Total      int           `json:"total"`
	State      string        `json:"state"`
	HasSensor  bool          `json:"has_sensor"`
	Readings   []ReadingView `json:"readings"`
	Error      string        `json:"error,omitempty"`
	SaveStatus string        `json:"save_status,omitempty"`
	SaveError  string        `json:"save_error,omitempty"`
	CanProceed bool          `json:"can_proceed"`
	Route      string        `json:"route"`
	Next       string        `json:"next"`
}

type WizardOverview struct {
	PatientID  string       `json:"patient_id"`
	ActiveStep string       `json:"active_step,omitempty"`
	Completed  bool         `json:"completed"`
	Steps      []WizardStep `json:"steps"`
}

type Triage struct {
	Abnormal bool     `json:"abnormal"`
	Reasons  []string `json:"reasons"`
}

type WizardContinue struct {
	Next         string  `json:"next"`
	Triage       *Triage `json:"triage,omitempty"`
	Priority     string  `json:"priority,omitempty"`
	PriorityCode string  `json:"priority_code,omitempty"`
}
