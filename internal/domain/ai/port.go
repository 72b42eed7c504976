package ai

import (
	"context"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

// Client is the LLM collaborator. Every method may fail; callers fall back
// to local heuristics on any error.
type Client interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	AnalyzeContent(ctx context.Context, text, language string) (Analysis, error)
	AnalyzeURL(ctx context.Context, url, language string) (Analysis, error)
	FactCheck(ctx context.Context, text, language string) (FactCheck, error)
}

// Analysis is the collaborator's content or URL assessment.
type Analysis struct {
	Score          int      `json:"score"`
	Findings       []string `json:"findings"`
	Recommendation string   `json:"recommendation"`
}

// FactCheck is the collaborator's verdict on the main claim. Sources are
// never taken from the collaborator.
type FactCheck struct {
	Claim              string           `json:"claim"`
	Verdict            analysis.Verdict `json:"verdict"`
	Explanation        string           `json:"explanation"`
	CorrectedStatement string           `json:"correctedStatement,omitempty"`
}
