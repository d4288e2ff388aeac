package contracts

import (
	"context"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
)

type WizardUsecase interface {
	GetOverview(ctx context.Context, sessionID string) (*responses.WizardOverview, error)
	GetStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error)
	StartStep(ctx context.Context, sessionID, step string) (*responses.WizardStep, error)
	SubmitBloodPressure(ctx context.Context, sessionID string, request *requests.SubmitBloodPressure) (*responses.WizardStep, error)
	RetrySave(ctx context.Context, sessionID, step string) (*responses.WizardStep, error)
	Continue(ctx context.Context, sessionID, step string) (*responses.WizardContinue, error)
}

type SummaryUsecase interface {
	GetSummary(ctx context.Context, sessionID string) (*responses.Summary, error)
	Print(ctx context.Context, sessionID string) (*responses.Print, error)
	Finish(ctx context.Context, sessionID string) (*responses.Navigation, error)
}
