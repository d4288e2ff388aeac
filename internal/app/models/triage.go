package models

type TriageResult struct {
	Abnormal bool     `json:"abnormal"`
	Reasons  []string `json:"reasons"`
}
