package models

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"time"
)

// KioskSession is everything the kiosk remembers between requests for one
// signed-in user. It lives in Redis under kiosk:session:{id}.
type KioskSession struct {
	SessionID string         `json:"session_id"`
	Role      string         `json:"role"`
	Name      string         `json:"name"`
	Username  string         `json:"username"`
	PatientID string         `json:"patient_id,omitempty"`
	StaffID   string         `json:"staff_id,omitempty"`
	Wizard    *WizardSession `json:"wizard,omitempty"`
	TimeModel
}

func NewKioskSession(sessionID, username string, login *LoginResult, now time.Time) *KioskSession {
	session := &KioskSession{
		SessionID: sessionID,
		Role:      login.Role,
		Name:      login.Name,
		Username:  username,
		PatientID: login.PatientID,
		StaffID:   login.StaffID,
	}
	session.SetCreatedAtUpdatedAt(now)
	return session
}

func (s *KioskSession) IsPatient() bool {
	return s.Role == constvars.KioskRolePatient
}

func (s *KioskSession) IsStaff() bool {
	return s.Role == constvars.KioskRoleStaff
}

// CurrentWizard returns the open wizard snapshot, starting a fresh one for the
// signed-in patient when there is none or the previous one was closed.
func (s *KioskSession) CurrentWizard(now time.Time) *WizardSession {
	if s.Wizard == nil || s.Wizard.Closed {
		s.Wizard = NewWizardSession(s.PatientID, now)
	}
	return s.Wizard
}
