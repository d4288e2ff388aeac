package middlewares

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// RequireSession resolves the signed session cookie (or bearer token) into the
// stored kiosk session and puts both the id and the session in the context.
func (m *Middlewares) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		session, err := m.AuthUsecase.ResolveSession(r.Context(), utils.GetSessionToken(r))
		if err != nil {
			m.Log.Info("Middlewares.RequireSession rejected request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			var customErr *exceptions.CustomError
			if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusUnauthorized {
				utils.ClearSessionCookie(w, m.InternalConfig.Session.CookieSecure)
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_ID_KEY, session.SessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_KIOSK_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after RequireSession.
func (m *Middlewares) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(constvars.CONTEXT_KIOSK_SESSION_KEY).(*models.KioskSession)
			if !ok || session == nil {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionTokenMissing(nil))
				return
			}
			if session.Role != role {
				m.Log.Info("Middlewares.RequireRole role mismatch",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingSessionIDKey, session.SessionID),
					zap.String(constvars.LoggingRoleKey, session.Role),
				)
				err := exceptions.ErrNotMatchRoleType(fmt.Errorf("required %s, got %s", role, session.Role))
				utils.BuildErrorResponse(m.Log, w, err.WithNext(landingRoute(session)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func landingRoute(session *models.KioskSession) string {
	if session.IsStaff() {
		return constvars.RouteStaff
	}
	return constvars.RouteWizardWeight
}
