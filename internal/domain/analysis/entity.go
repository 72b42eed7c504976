package analysis

import (
	"strconv"
	"time"
)

// ContentType enum
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentURL   ContentType = "url"
	ContentMedia ContentType = "media"
)

// Verdict enum
type Verdict string

const (
	VerdictFalse             Verdict = "FALSE"
	VerdictMisleading        Verdict = "MISLEADING"
	VerdictNeedsVerification Verdict = "NEEDS_VERIFICATION"
)

// HasCorrection reports whether a corrected statement belongs with the verdict.
func (v Verdict) HasCorrection() bool {
	return v == VerdictFalse || v == VerdictMisleading
}

// Valid reports whether v is one of the known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictFalse, VerdictMisleading, VerdictNeedsVerification:
		return true
	}
	return false
}

// Score bands
const (
	AuthenticThreshold = 70
	WarningThreshold   = 50
)

// Request is a single piece of content submitted for analysis.
// ContentType is fixed at construction; use NewRequest.
type Request struct {
	contentType  ContentType
	Content      string `json:"content"`
	FileName     string `json:"fileName,omitempty"`
	FileType     string `json:"fileType,omitempty"`
	LanguageHint string `json:"languageHint,omitempty"`
}

// NewRequest validates and builds a Request.
func NewRequest(ct ContentType, content, fileName, fileType, languageHint string) (Request, error) {
	req := Request{
		contentType:  ct,
		Content:      content,
		FileName:     fileName,
		FileType:     fileType,
		LanguageHint: languageHint,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r Request) ContentType() ContentType { return r.contentType }

// DetectionMetric is one of the four named sub-scores.
type DetectionMetric struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// SourceRef is a static reference to an authoritative source.
type SourceRef struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	CredibilityNote string `json:"credibilityNote"`
}

// FactCheckResult is attached to a response when the score is below AuthenticThreshold.
type FactCheckResult struct {
	Claim              string      `json:"claim"`
	Verdict            Verdict     `json:"verdict"`
	Explanation        string      `json:"explanation"`
	CorrectedStatement string      `json:"correctedStatement,omitempty"`
	Sources            []SourceRef `json:"sources"`
}

// Seconds is an elapsed duration that always serialises with exactly one
// fractional digit, e.g. 1.0 or 0.3.
type Seconds float64

func (s Seconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', 1, 64)), nil
}

// Response is the normalized result of an analysis.
type Response struct {
	AuthenticityScore   int               `json:"authenticityScore"`
	IsAuthentic         bool              `json:"isAuthentic"`
	IsWarning           bool              `json:"isWarning"`
	DetectionMetrics    []DetectionMetric `json:"detectionMetrics"`
	Findings            []string          `json:"findings"`
	Recommendation      string            `json:"recommendation"`
	AnalysisTimeSeconds Seconds           `json:"analysisTimeSeconds"`
	DetectedLanguage    string            `json:"detectedLanguage,omitempty"`
	FactCheck           *FactCheckResult  `json:"factCheck,omitempty"`
}

// Band derives the authentic/warning flags from a final score.
func Band(score int) (isAuthentic, isWarning bool) {
	switch {
	case score >= AuthenticThreshold:
		return true, false
	case score >= WarningThreshold:
		return false, true
	default:
		return false, false
	}
}

// ID tipe untuk Record
type RecordID string

// Record is the stored form of a finished analysis.
type Record struct {
	ID          RecordID    `json:"id"`
	TenantID    string      `json:"tenant_id"`
	ContentType ContentType `json:"content_type"`
	Content     string      `json:"content"`
	FileName    string      `json:"file_name,omitempty"`
	FileType    string      `json:"file_type,omitempty"`
	Response    Response    `json:"response"`
	ReportURL   string      `json:"report_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Summary counts records per score band.
type Summary struct {
	Total     int `json:"total_analyses"`
	Authentic int `json:"authentic"`
	Warning   int `json:"warning"`
	Flagged   int `json:"flagged"`
}
