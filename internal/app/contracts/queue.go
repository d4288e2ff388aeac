package contracts

import (
	"context"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
)

type QueueUsecase interface {
	GetBoard(ctx context.Context) (*responses.QueueBoard, error)
	RefreshBoard(ctx context.Context) (*responses.QueueBoard, error)
	MarkComplete(ctx context.Context, queueID string) (*responses.QueueBoard, error)
}

type RecordsUsecase interface {
	GetRecords(ctx context.Context, sessionID string) (*responses.Records, error)
	GetStaffDashboard(ctx context.Context, sessionID string) (*responses.StaffDashboard, error)
	SearchPatients(ctx context.Context, search string) (*responses.PatientList, error)
	GetPatientVitals(ctx context.Context, patientID string) (*responses.Records, error)
	ExportPatients(ctx context.Context, search string) ([]byte, error)
	UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.PatientProfile, error)
	AddPatientVitals(ctx context.Context, patientID string, request *requests.StaffVitals) (*responses.Records, error)
}
