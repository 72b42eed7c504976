package fallbacks

import "time"

// Step names a collaborator call that can degrade to a local heuristic.
type Step string

const (
	StepDetectLanguage Step = "detect_language"
	StepAnalyzeContent Step = "analyze_content"
	StepAnalyzeURL     Step = "analyze_url"
	StepFactCheck      Step = "fact_check"
)

// Event records one degraded step of an analysis.
type Event struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AnalysisID  string    `json:"analysis_id"`
	Step        Step      `json:"step"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
