package contracts

import (
	"context"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
)

// LoginOutput is the login response plus the signed token for the session cookie.
type LoginOutput struct {
	Response     *responses.Login
	SessionToken string
}

type RegisterOutput struct {
	Response     *responses.RegisterPatient
	SessionToken string
}

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*LoginOutput, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, request *requests.RegisterPatient) (*RegisterOutput, error)
	ResolveSession(ctx context.Context, sessionToken string) (*models.KioskSession, error)
}
