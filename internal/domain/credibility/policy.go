package credibility

import (
	"strings"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

// PolicyState is the outcome of the fact-check decision.
type PolicyState string

const (
	PolicySkipped   PolicyState = "skipped"
	PolicyTriggered PolicyState = "triggered"
)

// NeedsVerificationExplanation accompanies every locally unverifiable claim.
const NeedsVerificationExplanation = "This claim could not be verified automatically. Check it against the authoritative sources listed below before relying on it or sharing it."

// Decide triggers fact-checking strictly below the authentic threshold.
func Decide(score int) PolicyState {
	if score < analysis.AuthenticThreshold {
		return PolicyTriggered
	}
	return PolicySkipped
}

// ClassifyVerdict assigns FALSE to alarmist content and NEEDS_VERIFICATION
// otherwise. MISLEADING is only ever assigned by the AI collaborator.
func ClassifyVerdict(content string) analysis.Verdict {
	lower := strings.ToLower(content)
	if strings.Contains(lower, "breaking") || strings.Contains(lower, "shocking") || strings.Count(content, "!") > 5 {
		return analysis.VerdictFalse
	}
	return analysis.VerdictNeedsVerification
}

// LocalFactCheck builds a fact-check result from local rules only.
func LocalFactCheck(content string) analysis.FactCheckResult {
	res := analysis.FactCheckResult{
		Claim:   ExtractMainClaim(content),
		Verdict: ClassifyVerdict(content),
		Sources: MatchSources(content),
	}
	if res.Verdict == analysis.VerdictFalse {
		res.Explanation = Explain(content)
		res.CorrectedStatement = Correct(content)
	} else {
		res.Explanation = NeedsVerificationExplanation
	}
	return res
}

// Evaluate returns nil when fact-checking is skipped for score.
func Evaluate(score int, content string) *analysis.FactCheckResult {
	if Decide(score) == PolicySkipped {
		return nil
	}
	res := LocalFactCheck(content)
	return &res
}
