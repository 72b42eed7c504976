package prompt

import (
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                  `{"a":1}`,
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"```\n{\"a\":1}\n```  ":    `{"a":1}`,
		"  {\"language\":\"en\"} ": `{"language":"en"}`,
	}
	for in, want := range tests {
		if got := StripFences(in); got != want {
			t.Fatalf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPromptsMentionLanguage(t *testing.T) {
	for _, p := range []string{GetContentPrompt("id"), GetURLPrompt("id"), GetFactCheckPrompt("id")} {
		if !strings.Contains(p, `"id"`) {
			t.Fatalf("prompt does not carry the language: %s", p)
		}
	}
	if !strings.Contains(GetUserPrompt("text", "  hello  "), "<<<\nhello\n>>>") {
		t.Fatalf("user prompt must trim and delimit input")
	}
}
