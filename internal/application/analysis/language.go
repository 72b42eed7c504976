package analysis

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used whenever detection fails.
const DefaultLanguage = "en"

// normalizeLanguage maps a BCP 47 tag or language name code to its ISO-639-1
// base code. Codes without a two-letter form are rejected.
func normalizeLanguage(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	s := base.String()
	if len(s) != 2 {
		return "", false
	}
	return s, true
}
