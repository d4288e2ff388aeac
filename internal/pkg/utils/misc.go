package utils

import (
	"strings"
	"time"
)

// CalculateAge returns whole years between birthDate (YYYY-MM-DD) and now, 0 when unknown.
func CalculateAge(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}

	layout := "2006-01-02"
	if len(birthDate) > len(layout) {
		birthDate = birthDate[:len(layout)]
	}
	dob, err := time.Parse(layout, birthDate)
	if err != nil {
		return 0
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// FormatFullName joins the name parts, rendering a middle initial as "M.".
func FormatFullName(firstName, middleInitial, lastName string) string {
	parts := make([]string, 0, 3)
	if first := strings.TrimSpace(firstName); first != "" {
		parts = append(parts, first)
	}
	if mi := strings.TrimSpace(middleInitial); mi != "" {
		parts = append(parts, strings.TrimSuffix(mi, ".")+".")
	}
	if last := strings.TrimSpace(lastName); last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}
