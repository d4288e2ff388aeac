package contracts

import (
	"context"
	"esperanza-kiosk/internal/app/models"
)

// SessionStore persists kiosk sessions. Update applies fn atomically: fn sees
// the latest stored session and its changes are written only if nothing else
// changed the session in between.
type SessionStore interface {
	Create(ctx context.Context, session *models.KioskSession) error
	Get(ctx context.Context, sessionID string) (*models.KioskSession, error)
	Update(ctx context.Context, sessionID string, fn func(session *models.KioskSession) error) (*models.KioskSession, error)
	Delete(ctx context.Context, sessionID string) error
}
