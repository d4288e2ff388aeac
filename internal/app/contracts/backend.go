package contracts

import (
	"context"
	"esperanza-kiosk/internal/app/models"
)

// BackendClient is the clinic backend. Every field-name variant the backend
// emits is normalized behind this interface.
type BackendClient interface {
	Login(ctx context.Context, credentials *models.LoginCredentials) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	RegisterPatient(ctx context.Context, registration *models.PatientRegistration) (*models.PatientProfile, error)
	GetPatient(ctx context.Context, patientID string) (*models.PatientProfile, error)
	UpdatePatient(ctx context.Context, patientID string, update *models.PatientUpdate) (*models.PatientProfile, error)
	SearchPatients(ctx context.Context, search string) ([]models.PatientProfile, error)
	GetPatientVitals(ctx context.Context, patientID string) (*models.PatientVitals, error)
	SaveVitals(ctx context.Context, upsert *models.VitalsUpsert) (string, error)
	AddPatientVitals(ctx context.Context, entry *models.StaffVitalsEntry) (string, error)
	AddOrUpdateQueue(ctx context.Context, submission *models.QueueSubmission) (*models.QueueAssignment, error)
	CurrentQueue(ctx context.Context) ([]models.QueueEntry, error)
	MarkQueueComplete(ctx context.Context, queueID string) error
	PrintReceipt(ctx context.Context, receipt *models.PrintReceipt) error
}

// SensorClient triggers one measurement on the kiosk hardware bridge.
type SensorClient interface {
	FetchWeight(ctx context.Context) (*models.SensorReading, error)
	FetchHeight(ctx context.Context) (*models.SensorReading, error)
	FetchHeartRate(ctx context.Context) (*models.SensorReading, error)
	FetchTemperature(ctx context.Context) (*models.SensorReading, error)
}
