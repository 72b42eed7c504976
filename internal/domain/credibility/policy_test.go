package credibility

import (
	"testing"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

func TestDecideBoundary(t *testing.T) {
	if Decide(70) != PolicySkipped {
		t.Fatalf("70 must not trigger fact-checking")
	}
	if Decide(69) != PolicyTriggered {
		t.Fatalf("69 must trigger fact-checking")
	}
	if Decide(100) != PolicySkipped || Decide(0) != PolicyTriggered {
		t.Fatalf("unexpected decision at extremes")
	}
	if Evaluate(70, "BREAKING news") != nil {
		t.Fatalf("expected nil result when skipped")
	}
}

func TestClassifyVerdict(t *testing.T) {
	tests := []struct {
		content string
		want    analysis.Verdict
	}{
		{"breaking: the dam has failed", analysis.VerdictFalse},
		{"A Shocking discovery", analysis.VerdictFalse},
		{"wow!!!!!!", analysis.VerdictFalse},
		{"wow!!!!!", analysis.VerdictNeedsVerification},
		{"The council met on Tuesday.", analysis.VerdictNeedsVerification},
	}
	for _, tt := range tests {
		if got := ClassifyVerdict(tt.content); got != tt.want {
			t.Fatalf("ClassifyVerdict(%q) = %s, want %s", tt.content, got, tt.want)
		}
	}
}

func TestLocalFactCheckFalse(t *testing.T) {
	content := "URGENT!!!!!! BREAKING: secret virus!!!"
	got := Evaluate(45, content)
	if got == nil {
		t.Fatalf("expected fact-check to trigger")
	}
	if got.Verdict != analysis.VerdictFalse {
		t.Fatalf("expected FALSE, got %s", got.Verdict)
	}
	if got.Claim != "BREAKING: secret virus" {
		t.Fatalf("unexpected claim %q", got.Claim)
	}
	if got.Explanation != fallbackExplanation || got.CorrectedStatement != fallbackCorrection {
		t.Fatalf("expected fallback explanation and correction, got %+v", got)
	}
	if len(got.Sources) != 5 {
		t.Fatalf("expected general sources only, got %d", len(got.Sources))
	}
}

func TestLocalFactCheckNeedsVerification(t *testing.T) {
	got := LocalFactCheck("The new vaccine schedule starts in March for all schools.")
	if got.Verdict != analysis.VerdictNeedsVerification {
		t.Fatalf("expected NEEDS_VERIFICATION, got %s", got.Verdict)
	}
	if got.CorrectedStatement != "" {
		t.Fatalf("corrected statement must be absent, got %q", got.CorrectedStatement)
	}
	if got.Explanation != NeedsVerificationExplanation {
		t.Fatalf("unexpected explanation %q", got.Explanation)
	}
	if got.Sources[0].Name != "World Health Organization" {
		t.Fatalf("expected health sources first, got %s", got.Sources[0].Name)
	}
}

func TestExtractMainClaim(t *testing.T) {
	tests := []struct {
		content, want string
	}{
		{"Hi. Ok! The river flooded the old town overnight. More soon.", "The river flooded the old town overnight"},
		{"   Scientists confirm water is wet   ", "Scientists confirm water is wet"},
		{"Short. Tiny! Eh?", NoClaimIdentified},
		{"", NoClaimIdentified},
		{"exactly10c. this one is longer than ten", "this one is longer than ten"},
	}
	for _, tt := range tests {
		if got := ExtractMainClaim(tt.content); got != tt.want {
			t.Fatalf("ExtractMainClaim(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestExplainAndCorrectDispatch(t *testing.T) {
	if got := Explain("5G towers spread COVID"); got != explanations[0].text {
		t.Fatalf("vaccine/covid must win over 5g, got %q", got)
	}
	if got := Explain("radiation from phone masts"); got != explanations[3].text {
		t.Fatalf("expected 5g explanation, got %q", got)
	}
	if got := Explain("Banks will stop withdrawals"); got != fallbackExplanation {
		t.Fatalf("bank topic has no explanation, got %q", got)
	}
	if got := Correct("Banks will block every withdraw tomorrow"); got != corrections[4].text {
		t.Fatalf("expected bank correction, got %q", got)
	}
	if got := Correct("The government will ban cash"); got != corrections[5].text {
		t.Fatalf("expected government correction, got %q", got)
	}
	if got := Correct("The government opened a park"); got != fallbackCorrection {
		t.Fatalf("expected fallback correction, got %q", got)
	}
	if got := Correct("Climate lies and election fraud"); got != corrections[1].text {
		t.Fatalf("climate must win over election, got %q", got)
	}
}

func TestMatchSources(t *testing.T) {
	both := MatchSources("The vaccine will be mandatory after the election")
	if len(both) != MaxSources {
		t.Fatalf("expected %d sources, got %d", MaxSources, len(both))
	}
	wantNames := []string{
		"World Health Organization", "Centers for Disease Control and Prevention", "PubMed",
		"Vote.gov", "U.S. Election Assistance Commission", "Ballotpedia",
	}
	for i, n := range wantNames {
		if both[i].Name != n {
			t.Fatalf("source %d: expected %s, got %s", i, n, both[i].Name)
		}
	}

	general := MatchSources("nothing topical here")
	if len(general) != 5 || general[0].Name != "Reuters Fact Check" || general[4].Name != "Snopes" {
		t.Fatalf("unexpected general sources: %v", general)
	}

	climate := MatchSources("Record temperature this summer")
	if len(climate) != 6 || climate[0].Name != "NASA Climate" || climate[3].Name != "Reuters Fact Check" {
		t.Fatalf("unexpected climate sources: %v", climate)
	}

	climate[0].Name = "mutated"
	if MatchSources("climate")[0].Name != "NASA Climate" {
		t.Fatalf("reference table must not be mutable through results")
	}
}
