package utils

import (
	"esperanza-kiosk/internal/pkg/dto/requests"
	"strings"
	"unicode"
)

func capitalize(input string) string {
	if len(input) == 0 {
		return input
	}
	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// capitalizeWords title-cases every space separated word ("de la cruz" -> "De La Cruz").
func capitalizeWords(input string) string {
	words := strings.Fields(input)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Username = strings.TrimSpace(input.Username)
	input.Pin = strings.TrimSpace(input.Pin)
	input.LoginType = strings.ToLower(strings.TrimSpace(input.LoginType))
}

func SanitizeRegisterPatientRequest(input *requests.RegisterPatient) {
	input.FirstName = capitalizeWords(input.FirstName)
	input.LastName = capitalizeWords(input.LastName)
	input.MiddleInitial = strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(input.MiddleInitial), "."))
	input.Sex = capitalize(strings.TrimSpace(input.Sex))
	input.ContactNumber = NormalizeContactNumber(input.ContactNumber)
	input.Address = strings.Join(strings.Fields(input.Address), " ")
	input.Username = strings.TrimSpace(input.Username)
	input.Birthdate = strings.TrimSpace(input.Birthdate)
	input.Pin = strings.TrimSpace(input.Pin)
}

func SanitizeUpdatePatientRequest(input *requests.UpdatePatient) {
	input.FirstName = capitalizeWords(input.FirstName)
	input.LastName = capitalizeWords(input.LastName)
	input.MiddleInitial = strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(input.MiddleInitial), "."))
	input.Sex = capitalize(strings.TrimSpace(input.Sex))
	input.ContactNumber = NormalizeContactNumber(input.ContactNumber)
	input.Address = strings.Join(strings.Fields(input.Address), " ")
	input.Birthdate = strings.TrimSpace(input.Birthdate)
	input.Pin = strings.TrimSpace(input.Pin)
}

func SanitizeStaffVitalsRequest(input *requests.StaffVitals) {
	input.BloodPressure = strings.ReplaceAll(strings.TrimSpace(input.BloodPressure), " ", "")
	input.Date = strings.TrimSpace(input.Date)
}
