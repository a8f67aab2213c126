package validators

import "strings"

// SanitizeString trims whitespace and caps the result at maxLen runes.
// A maxLen of zero means unbounded.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
