package responses

type Login struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	PatientID string `json:"patient_id,omitempty"`
	StaffID   string `json:"staff_id,omitempty"`
	Next      string `json:"next"`
}

type RegisterPatient struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Next      string `json:"next"`
}
