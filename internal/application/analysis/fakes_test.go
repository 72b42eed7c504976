package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/bryanwahyu/verifact/internal/domain/ai"
	domain "github.com/bryanwahyu/verifact/internal/domain/analysis"
	"github.com/bryanwahyu/verifact/internal/domain/fallbacks"
)

type fakeAI struct {
	mu    sync.Mutex
	calls []string

	lang    string
	langErr error

	content    ai.Analysis
	contentErr error

	url    ai.Analysis
	urlErr error

	fact    ai.FactCheck
	factErr error
}

func (f *fakeAI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAI) DetectLanguage(ctx context.Context, text string) (string, error) {
	f.record("detect")
	return f.lang, f.langErr
}

func (f *fakeAI) AnalyzeContent(ctx context.Context, text, language string) (ai.Analysis, error) {
	f.record("content:" + language)
	return f.content, f.contentErr
}

func (f *fakeAI) AnalyzeURL(ctx context.Context, url, language string) (ai.Analysis, error) {
	f.record("url:" + language)
	return f.url, f.urlErr
}

func (f *fakeAI) FactCheck(ctx context.Context, text, language string) (ai.FactCheck, error) {
	f.record("factcheck:" + language)
	return f.fact, f.factErr
}

type memoryRepo struct {
	mu      sync.Mutex
	records []*domain.Record
	saveErr error
}

func (r *memoryRepo) Save(ctx context.Context, rec *domain.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, tenant string, id domain.RecordID) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TenantID == tenant && rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Record, error) {
	return r.Paginate(ctx, tenant, 1, limit)
}

func (r *memoryRepo) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Record
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].TenantID == tenant {
			out = append(out, r.records[i])
		}
	}
	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (r *memoryRepo) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s domain.Summary
	for _, rec := range r.records {
		if rec.TenantID != tenant {
			continue
		}
		s.Total++
		switch {
		case rec.Response.IsAuthentic:
			s.Authentic++
		case rec.Response.IsWarning:
			s.Warning++
		default:
			s.Flagged++
		}
	}
	return s, nil
}

type memoryFallbacks struct {
	mu     sync.Mutex
	events []*fallbacks.Event
}

func (m *memoryFallbacks) Save(ctx context.Context, e *fallbacks.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memoryFallbacks) ListByAnalysis(ctx context.Context, tenant, analysisID string, limit int) ([]*fallbacks.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*fallbacks.Event
	for _, e := range m.events {
		if e.TenantID == tenant && e.AnalysisID == analysisID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memoryReports struct {
	keys []string
	err  error
}

func (m *memoryReports) PutReport(ctx context.Context, key string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "http://reports.local/" + key, nil
}

type memoryEvents struct {
	published []domain.RecordID
}

func (m *memoryEvents) PublishCompleted(ctx context.Context, r *domain.Record) error {
	m.published = append(m.published, r.ID)
	return nil
}

type countingMetrics struct {
	analyses  int
	fallbacks map[string]int
}

func (c *countingMetrics) ObserveAnalysis(contentType string, score int, factChecked bool) {
	c.analyses++
}

func (c *countingMetrics) ObserveFallback(step string) {
	if c.fallbacks == nil {
		c.fallbacks = map[string]int{}
	}
	c.fallbacks[step]++
}

var errBoom = errors.New("boom")
