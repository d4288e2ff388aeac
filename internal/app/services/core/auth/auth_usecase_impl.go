package auth

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/shared/ratelimiter"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/requests"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const loginLimiterGroup = "login"

type authUsecase struct {
	SessionStore          contracts.SessionStore
	BackendClient         contracts.BackendClient
	PriorityCodeGenerator contracts.PriorityCodeGenerator
	LoginLimiter          *ratelimiter.ResourceLimiter
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewAuthUsecase(
	sessionStore contracts.SessionStore,
	backendClient contracts.BackendClient,
	priorityCodeGenerator contracts.PriorityCodeGenerator,
	loginLimiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		SessionStore:          sessionStore,
		BackendClient:         backendClient,
		PriorityCodeGenerator: priorityCodeGenerator,
		LoginLimiter:          loginLimiter,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*contracts.LoginOutput, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, request.LoginType),
	)

	limit, err := uc.LoginLimiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:      request.Username,
		LimiterGroupName:  loginLimiterGroup,
		WindowDurationSec: uc.InternalConfig.Session.LoginWindowInSeconds,
		MaxQuota:          uc.InternalConfig.Session.LoginMaxAttempts,
	})
	if err != nil {
		uc.Log.Warn("authUsecase.Login limiter unavailable, allowing attempt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if !limit.Allowed {
		uc.Log.Warn("authUsecase.Login too many attempts",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("retry_after_seconds", limit.RetryAfterSecs),
		)
		return nil, exceptions.ErrTooManyRequests(fmt.Errorf("login attempts exceeded, retry after %ds", limit.RetryAfterSecs))
	}

	result, err := uc.BackendClient.Login(ctx, &models.LoginCredentials{
		Username:  request.Username,
		Pin:       request.Pin,
		LoginType: request.LoginType,
	})
	if err != nil {
		uc.Log.Error("authUsecase.Login error from backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if result.Role == "" {
		result.Role = request.LoginType
	}
	result.Role = strings.ToLower(result.Role)
	if result.Role == constvars.KioskRolePatient && result.PatientID == "" {
		return nil, exceptions.ErrPatientIdentityMissing(models.ErrPatientIdentityMissing)
	}

	token, session, err := uc.openSession(ctx, request.Username, result)
	if err != nil {
		return nil, err
	}

	response := &responses.Login{
		Role:      session.Role,
		Name:      session.Name,
		PatientID: session.PatientID,
		StaffID:   session.StaffID,
		Next:      landingRoute(session),
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
		zap.String(constvars.LoggingRoleKey, session.Role),
	)
	return &contracts.LoginOutput{Response: response, SessionToken: token}, nil
}

// Logout always ends the kiosk session. The backend call is best effort.
func (uc *authUsecase) Logout(ctx context.Context, sessionID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	if err := uc.BackendClient.Logout(ctx); err != nil {
		uc.Log.Warn("authUsecase.Logout backend logout failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.PriorityCodeGenerator.Reset(ctx, sessionID); err != nil {
		uc.Log.Warn("authUsecase.Logout error resetting priority counter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.SessionStore.Delete(ctx, sessionID); err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	return nil
}

// Register creates the patient on the backend and signs them in.
func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterPatient) (*contracts.RegisterOutput, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	profile, err := uc.BackendClient.RegisterPatient(ctx, &models.PatientRegistration{
		FirstName:     request.FirstName,
		MiddleInitial: request.MiddleInitial,
		LastName:      request.LastName,
		Sex:           request.Sex,
		ContactNumber: request.ContactNumber,
		Address:       request.Address,
		Username:      request.Username,
		Birthdate:     request.Birthdate,
		Pin:           request.Pin,
	})
	if err != nil {
		uc.Log.Error("authUsecase.Register error from backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	name := profile.FullName()
	if name == "" {
		name = utils.FormatFullName(request.FirstName, request.MiddleInitial, request.LastName)
	}
	token, session, err := uc.openSession(ctx, request.Username, &models.LoginResult{
		Role:      constvars.KioskRolePatient,
		Name:      name,
		PatientID: profile.PatientID,
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, profile.PatientID),
	)
	return &contracts.RegisterOutput{
		Response: &responses.RegisterPatient{
			PatientID: session.PatientID,
			Name:      session.Name,
			Role:      session.Role,
			Next:      landingRoute(session),
		},
		SessionToken: token,
	}, nil
}

func (uc *authUsecase) ResolveSession(ctx context.Context, sessionToken string) (*models.KioskSession, error) {
	if sessionToken == "" {
		return nil, exceptions.ErrSessionTokenMissing(nil)
	}

	sessionID, err := utils.ParseSessionJWT(sessionToken, uc.InternalConfig.Session.Secret)
	if err != nil {
		return nil, exceptions.ErrSessionTokenInvalid(err)
	}

	return uc.SessionStore.Get(ctx, sessionID)
}

func (uc *authUsecase) openSession(ctx context.Context, username string, login *models.LoginResult) (string, *models.KioskSession, error) {
	session := models.NewKioskSession(utils.GenerateSessionID(), username, login, time.Now())
	if err := uc.SessionStore.Create(ctx, session); err != nil {
		uc.Log.Error("authUsecase.openSession error creating session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return "", nil, err
	}

	lifetime := time.Duration(uc.InternalConfig.Session.MaxLifetimeInHours) * time.Hour
	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.Session.Secret, lifetime)
	if err != nil {
		return "", nil, exceptions.ErrSessionTokenGenerate(err)
	}
	return token, session, nil
}

func landingRoute(session *models.KioskSession) string {
	if session.IsStaff() {
		return constvars.RouteStaff
	}
	return constvars.RouteWizardWeight
}
