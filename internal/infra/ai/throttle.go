// Package ai holds decorators shared by every ai.Client implementation.
package ai

import (
	"context"

	"golang.org/x/time/rate"

	domain "github.com/bryanwahyu/verifact/internal/domain/ai"
)

// Throttled caps how often the wrapped collaborator is called. A spent
// budget fails fast with ErrRateLimited so the caller falls back locally
// instead of queueing behind the provider.
type Throttled struct {
	Next    domain.Client
	Limiter *rate.Limiter
}

// NewThrottled allows rps calls per second with the given burst.
func NewThrottled(next domain.Client, rps float64, burst int) *Throttled {
	if burst < 1 {
		burst = 1
	}
	return &Throttled{Next: next, Limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t *Throttled) allow() error {
	if t.Limiter != nil && !t.Limiter.Allow() {
		return domain.ErrRateLimited
	}
	return nil
}

func (t *Throttled) DetectLanguage(ctx context.Context, text string) (string, error) {
	if err := t.allow(); err != nil {
		return "", err
	}
	return t.Next.DetectLanguage(ctx, text)
}

func (t *Throttled) AnalyzeContent(ctx context.Context, text, language string) (domain.Analysis, error) {
	if err := t.allow(); err != nil {
		return domain.Analysis{}, err
	}
	return t.Next.AnalyzeContent(ctx, text, language)
}

func (t *Throttled) AnalyzeURL(ctx context.Context, url, language string) (domain.Analysis, error) {
	if err := t.allow(); err != nil {
		return domain.Analysis{}, err
	}
	return t.Next.AnalyzeURL(ctx, url, language)
}

func (t *Throttled) FactCheck(ctx context.Context, text, language string) (domain.FactCheck, error) {
	if err := t.allow(); err != nil {
		return domain.FactCheck{}, err
	}
	return t.Next.FactCheck(ctx, text, language)
}

var _ domain.Client = (*Throttled)(nil)
