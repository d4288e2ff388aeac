package utils

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"regexp"
	"strings"
)

var reContactSeparators = regexp.MustCompile(constvars.RegexContactSeparators)

// NormalizeContactNumber strips spaces and common separators so "0917-123 4567"
// validates as the 11 digit local format.
func NormalizeContactNumber(input string) string {
	return reContactSeparators.ReplaceAllString(strings.TrimSpace(input), "")
}
