package utils

import (
	"regexp"
	"strings"
)

// controlChars matches C0 controls except tab and newline, plus DEL
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f]`)

// SanitizeText strips control characters and surrounding whitespace from free text
func SanitizeText(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}

// Truncate shortens s to at most max runes
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
