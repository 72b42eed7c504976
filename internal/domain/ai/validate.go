package ai

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

// FindingsCount is the number of findings every analysis carries.
const FindingsCount = 4

// Validate checks the analysis shape. Failures wrap ErrMalformedResponse.
func (a Analysis) Validate() error {
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", ErrMalformedResponse, a.Score)
	}
	if len(a.Findings) != FindingsCount {
		return fmt.Errorf("%w: expected %d findings, got %d", ErrMalformedResponse, FindingsCount, len(a.Findings))
	}
	for i, f := range a.Findings {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: finding %d is empty", ErrMalformedResponse, i)
		}
	}
	if strings.TrimSpace(a.Recommendation) == "" {
		return fmt.Errorf("%w: recommendation missing", ErrMalformedResponse)
	}
	return nil
}

// Validate checks the fact-check shape. Failures wrap ErrMalformedResponse.
func (f FactCheck) Validate() error {
	if !f.Verdict.Valid() {
		return fmt.Errorf("%w: unknown verdict %q", ErrMalformedResponse, f.Verdict)
	}
	if strings.TrimSpace(f.Claim) == "" || strings.TrimSpace(f.Explanation) == "" {
		return fmt.Errorf("%w: claim and explanation are required", ErrMalformedResponse)
	}
	return nil
}

// NormalizeVerdict upper-cases a verdict and accepts common spellings.
func NormalizeVerdict(v string) analysis.Verdict {
	s := strings.ToUpper(strings.TrimSpace(v))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return analysis.Verdict(s)
}
