package models

import "esperanza-kiosk/internal/pkg/utils"

type PatientProfile struct {
	PatientID     string
	FirstName     string
	MiddleInitial string
	LastName      string
	Sex           string
	Address       string
	ContactNumber string
	DateOfBirth   string
	Username      string
}

func (p PatientProfile) FullName() string {
	return utils.FormatFullName(p.FirstName, p.MiddleInitial, p.LastName)
}

type PatientRegistration struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Sex           string
	ContactNumber string
	Address       string
	Username      string
	Birthdate     string
	Pin           string
}

// PatientUpdate is a partial profile edit. Empty fields are left unchanged.
type PatientUpdate struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Sex           string
	ContactNumber string
	Address       string
	Birthdate     string
	Pin           string
}

func (u PatientUpdate) IsEmpty() bool {
	return u == PatientUpdate{}
}

type LoginCredentials struct {
	Username  string
	Pin       string
	LoginType string
}

type LoginResult struct {
	Role      string
	Name      string
	PatientID string
	StaffID   string
}
