package ai

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"

	domain "github.com/bryanwahyu/verifact/internal/domain/ai"
)

type countingClient struct{ calls int }

func (c *countingClient) DetectLanguage(context.Context, string) (string, error) {
	c.calls++
	return "en", nil
}

func (c *countingClient) AnalyzeContent(context.Context, string, string) (domain.Analysis, error) {
	c.calls++
	return domain.Analysis{Score: 80}, nil
}

func (c *countingClient) AnalyzeURL(context.Context, string, string) (domain.Analysis, error) {
	c.calls++
	return domain.Analysis{Score: 80}, nil
}

func (c *countingClient) FactCheck(context.Context, string, string) (domain.FactCheck, error) {
	c.calls++
	return domain.FactCheck{}, nil
}

func TestThrottledPassesThroughWithinBudget(t *testing.T) {
	next := &countingClient{}
	th := NewThrottled(next, 100, 2)

	if _, err := th.DetectLanguage(context.Background(), "x"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := th.AnalyzeContent(context.Background(), "x", "en"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 delegated calls, got %d", next.calls)
	}
}

func TestThrottledFailsFastWhenSpent(t *testing.T) {
	next := &countingClient{}
	th := &Throttled{Next: next, Limiter: rate.NewLimiter(0, 0)}

	if _, err := th.AnalyzeURL(context.Background(), "https://example.org", "en"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if _, err := th.FactCheck(context.Background(), "x", "en"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if next.calls != 0 {
		t.Fatalf("collaborator must not be called, got %d calls", next.calls)
	}
}
