package credibility

import (
	"strings"
	"unicode/utf8"
)

// NoClaimIdentified is returned when no sentence is long enough to be a claim.
const NoClaimIdentified = "No specific claim identified"

// ExtractMainClaim returns the first sentence longer than ten characters.
func ExtractMainClaim(content string) string {
	sentences := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 10 {
			return s
		}
	}
	return NoClaimIdentified
}
