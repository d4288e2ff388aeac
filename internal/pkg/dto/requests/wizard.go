package requests

type SubmitBloodPressure struct {
	Systolic  int `json:"systolic" validate:"required,gte=40,lte=300"`
	Diastolic int `json:"diastolic" validate:"required,gte=20,lte=200"`
}

type PatientSearch struct {
	Search string `json:"search" validate:"omitempty,max=100"`
}
