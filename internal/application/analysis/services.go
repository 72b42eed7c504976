package analysis

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/bryanwahyu/verifact/internal/application"
	"github.com/bryanwahyu/verifact/internal/domain/ai"
	domain "github.com/bryanwahyu/verifact/internal/domain/analysis"
	"github.com/bryanwahyu/verifact/internal/domain/credibility"
	"github.com/bryanwahyu/verifact/internal/domain/fallbacks"
)

// MetricsRecorder receives analysis outcomes for monitoring.
type MetricsRecorder interface {
	ObserveAnalysis(contentType string, score int, factChecked bool)
	ObserveFallback(step string)
}

// Service implements the analysis use-cases.
// Service is safe for concurrent use; requests share only read-only tables
// and the collaborator.
type Service struct {
	AI        ai.Client // optional; nil means local heuristics only
	Repo      domain.Repository
	Fallbacks fallbacks.Repository
	Reports   domain.ReportStore
	Events    domain.EventPublisher
	Metrics   MetricsRecorder
	Clock     application.Clock

	// Rand returns the jitter source for one request. Defaults to a freshly
	// seeded generator per call.
	Rand func() credibility.Source
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) source() credibility.Source {
	if s.Rand != nil {
		return s.Rand()
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Analyze scores a request. Only validation errors are returned; every
// collaborator failure degrades to the local heuristic for that step.
func (s *Service) Analyze(ctx context.Context, req domain.Request) (domain.Response, error) {
	resp, _, err := s.analyze(ctx, req)
	return resp, err
}

func (s *Service) analyze(ctx context.Context, req domain.Request) (domain.Response, trace, error) {
	var tr trace
	if err := req.Validate(); err != nil {
		return domain.Response{}, tr, err
	}
	start := s.now()
	src := s.source()

	var resp domain.Response
	switch req.ContentType() {
	case domain.ContentMedia:
		resp = s.analyzeMedia(req, src)
	default:
		resp = s.analyzeRemote(ctx, req, src, &tr)
	}

	finalize(&resp, s.now().Sub(start))
	if s.Metrics != nil {
		s.Metrics.ObserveAnalysis(string(req.ContentType()), resp.AuthenticityScore, resp.FactCheck != nil)
	}
	return resp, tr, nil
}

// analyzeRemote handles text and url content: language detection, content
// analysis and fact-check, each with its own local fallback.
func (s *Service) analyzeRemote(ctx context.Context, req domain.Request, src credibility.Source, tr *trace) domain.Response {
	ct := req.ContentType()
	content := req.Content

	lang, ok := normalizeLanguage(req.LanguageHint)
	if !ok {
		detected := attempt(s.AI, func(c ai.Client) (string, error) {
			return c.DetectLanguage(ctx, content)
		}, nil)
		if detected.ok() {
			if code, valid := normalizeLanguage(detected.value); valid {
				detected.value = code
			} else {
				detected.err = ai.ErrMalformedResponse
			}
		}
		lang, _ = resolve(ctx, s, tr, fallbacks.StepDetectLanguage, detected, func() string { return DefaultLanguage })
	}

	step := fallbacks.StepAnalyzeContent
	call := func(c ai.Client) (ai.Analysis, error) { return c.AnalyzeContent(ctx, content, lang) }
	if ct == domain.ContentURL {
		step = fallbacks.StepAnalyzeURL
		call = func(c ai.Client) (ai.Analysis, error) { return c.AnalyzeURL(ctx, content, lang) }
	}
	remote := attempt(s.AI, call, ai.Analysis.Validate)
	result, _ := resolve(ctx, s, tr, step, remote, func() ai.Analysis {
		return localAnalysis(ct, content, src)
	})

	resp := domain.Response{
		AuthenticityScore: result.Score,
		DetectionMetrics:  credibility.ExpandMetrics(ct, "", result.Score, src),
		Findings:          append([]string(nil), result.Findings...),
		Recommendation:    result.Recommendation,
		DetectedLanguage:  lang,
	}

	if credibility.Decide(resp.AuthenticityScore) == credibility.PolicyTriggered {
		checked := attempt(s.AI, func(c ai.Client) (ai.FactCheck, error) {
			return c.FactCheck(ctx, content, lang)
		}, ai.FactCheck.Validate)
		fc, fromAI := resolve(ctx, s, tr, fallbacks.StepFactCheck, checked, func() ai.FactCheck {
			return ai.FactCheck{}
		})
		var out domain.FactCheckResult
		if fromAI {
			out = remoteFactCheck(content, fc)
		} else {
			out = credibility.LocalFactCheck(content)
		}
		resp.FactCheck = &out
	}
	return resp
}

func localAnalysis(ct domain.ContentType, content string, src credibility.Source) ai.Analysis {
	if ct == domain.ContentURL {
		score := credibility.ScoreURL(content, src)
		return ai.Analysis{
			Score:          score,
			Findings:       credibility.FindingsForURL(content),
			Recommendation: credibility.Recommendation(ct, score),
		}
	}
	score := credibility.ScoreText(content, src)
	return ai.Analysis{
		Score:          score,
		Findings:       credibility.FindingsForText(content),
		Recommendation: credibility.Recommendation(ct, score),
	}
}

// remoteFactCheck keeps the collaborator's verdict but always matches sources
// locally, and keeps correctedStatement present iff the verdict carries one.
func remoteFactCheck(content string, fc ai.FactCheck) domain.FactCheckResult {
	out := domain.FactCheckResult{
		Claim:       fc.Claim,
		Verdict:     fc.Verdict,
		Explanation: fc.Explanation,
		Sources:     credibility.MatchSources(content),
	}
	if fc.Verdict.HasCorrection() {
		out.CorrectedStatement = fc.CorrectedStatement
		if out.CorrectedStatement == "" {
			out.CorrectedStatement = credibility.Correct(content)
		}
	}
	return out
}

// analyzeMedia never calls the collaborator.
func (s *Service) analyzeMedia(req domain.Request, src credibility.Source) domain.Response {
	kind := credibility.ClassifyMedia(req.FileType, req.FileName)
	score := credibility.ScoreMedia(kind, src)
	return domain.Response{
		AuthenticityScore: score,
		DetectionMetrics:  credibility.ExpandMetrics(domain.ContentMedia, kind, score, src),
		Findings:          credibility.FindingsForMedia(kind),
		Recommendation:    credibility.Recommendation(domain.ContentMedia, score),
		FactCheck:         credibility.Evaluate(score, req.Content),
	}
}

// finalize applies the post-processing every path shares.
func finalize(resp *domain.Response, elapsed time.Duration) {
	resp.AuthenticityScore = credibility.ClampScore(float64(resp.AuthenticityScore), 0, 100)
	for i := range resp.DetectionMetrics {
		m := &resp.DetectionMetrics[i]
		m.Score = credibility.ClampScore(float64(m.Score), 0, 100)
	}
	resp.IsAuthentic, resp.IsWarning = domain.Band(resp.AuthenticityScore)
	resp.AnalysisTimeSeconds = domain.Seconds(math.Round(elapsed.Seconds()*10) / 10)
}
