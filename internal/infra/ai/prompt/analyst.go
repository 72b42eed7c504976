package prompt

import (
	"fmt"
	"strings"
)

const jsonOnly = `You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.`

// GetLanguagePrompt asks for the ISO-639-1 code of a text.
func GetLanguagePrompt() string {
	return `You identify the language of user-submitted text. ` + jsonOnly + `

Schema:
{"language": "<ISO-639-1 two-letter code, lowercase>"}`
}

// GetContentPrompt provides strict directions and schema for text credibility analysis.
func GetContentPrompt(language string) string {
	return fmt.Sprintf(`You are a senior fact-checking analyst assessing whether a piece of text is authentic or misinformation. %s

Requirements:
- score is an integer from 0 (certainly misinformation) to 100 (certainly authentic).
- findings has exactly 4 short strings ordered from most to least important.
- recommendation is one or two sentences of advice for the reader.
- Write findings and recommendation in the language with ISO-639-1 code %q.

Schema:
{"score": 0, "findings": ["<string>", "<string>", "<string>", "<string>"], "recommendation": "<string>"}`, jsonOnly, language)
}

// GetURLPrompt provides directions for judging a link without visiting it.
func GetURLPrompt(language string) string {
	return fmt.Sprintf(`You are a web security and media literacy analyst. Judge the credibility and safety of a URL from its scheme, domain and path only; do not assume you can open it. %s

Requirements:
- score is an integer from 0 (dangerous or unreliable) to 100 (reputable and safe).
- findings has exactly 4 short strings ordered from most to least important.
- recommendation is one or two sentences of advice for the reader.
- Write findings and recommendation in the language with ISO-639-1 code %q.

Schema:
{"score": 0, "findings": ["<string>", "<string>", "<string>", "<string>"], "recommendation": "<string>"}`, jsonOnly, language)
}

// GetFactCheckPrompt asks for a verdict on the main claim of a text.
func GetFactCheckPrompt(language string) string {
	return fmt.Sprintf(`You are a professional fact-checker. Identify the main factual claim in the text and judge it. %s

Requirements:
- verdict is one of FALSE, MISLEADING, NEEDS_VERIFICATION.
- correctedStatement is required for FALSE and MISLEADING and must be omitted otherwise.
- Do not list sources; they are added separately.
- Write claim, explanation and correctedStatement in the language with ISO-639-1 code %q.

Schema:
{"claim": "<string>", "verdict": "<FALSE|MISLEADING|NEEDS_VERIFICATION>", "explanation": "<string>", "correctedStatement": "<string>"}`, jsonOnly, language)
}

// GetUserPrompt wraps the submitted input in delimiters.
func GetUserPrompt(kind, input string) string {
	return fmt.Sprintf("Analyze the following %s and respond with the JSON per schema.\n<<<\n%s\n>>>", kind, strings.TrimSpace(input))
}

// LanguageAnswer is the wire shape of GetLanguagePrompt.
type LanguageAnswer struct {
	Language string `json:"language"`
}

// StripFences removes a markdown code fence some models add despite instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
