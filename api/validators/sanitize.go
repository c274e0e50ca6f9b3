package validators

import (
	"strings"
	"unicode"
)

// SanitizeString cleans a free-text filter coming from the agent: control
// characters are dropped, whitespace runs become one space, and the result is
// capped at maxLen runes so "Zona Norte" or "Ñuñoa" are never cut mid-rune.
func SanitizeString(input string, maxLen int) string {
	printable := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
	cleaned := strings.Join(strings.Fields(printable), " ")
	if maxLen <= 0 {
		return cleaned
	}
	if runes := []rune(cleaned); len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen]))
	}
	return cleaned
}
