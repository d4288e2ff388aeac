package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	LoginSuccess        = "successfully login"
	LogoutSuccess       = "successfully logout"
	RegistrationSuccess = "patient registered successfully"

	// Wizard messages
	GetWizardSuccessMessage          = "get vitals wizard successfully"
	GetWizardStepSuccessMessage      = "get vitals step successfully"
	StartWizardStepSuccessMessage    = "vitals step measurement finished"
	SubmitBloodPressureSuccess       = "blood pressure recorded"
	RetryWizardSaveSuccessMessage    = "vitals save retried"
	ContinueWizardStepSuccessMessage = "continue to next step"
	GetSummarySuccessMessage         = "get vitals summary successfully"
	PrintSummarySuccessMessage       = "receipt sent to printer"
	FinishWizardSuccessMessage       = "vitals visit finished"

	// Queue and records messages
	GetQueueBoardSuccessMessage     = "get queue successfully"
	MarkQueueCompleteSuccessMessage = "queue entry marked complete"
	GetRecordsSuccessMessage        = "get records successfully"
	GetPatientsSuccessMessage       = "get patients successfully"
	GetPatientVitalsSuccessMessage  = "get patient vitals successfully"
	GetStaffDashboardSuccessMessage = "get staff dashboard successfully"
	UpdatePatientSuccessMessage     = "patient record updated successfully"
	AddPatientVitalsSuccessMessage  = "blood pressure saved successfully"
)
