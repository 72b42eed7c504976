package analysis

import (
	"context"
	"log/slog"

	"github.com/bryanwahyu/verifact/internal/domain/ai"
	"github.com/bryanwahyu/verifact/internal/domain/fallbacks"
)

// outcome is the result of one collaborator step: either a value or the
// reason the collaborator could not provide it.
type outcome[T any] struct {
	value T
	err   error
}

func (o outcome[T]) ok() bool { return o.err == nil }

// Degradation records a step that fell back to local heuristics.
type Degradation struct {
	Step fallbacks.Step
	Err  error
}

// trace collects the degraded steps of a single request.
type trace struct {
	degraded []Degradation
}

// attempt runs a collaborator call and validates its answer. A nil client
// counts as unavailable.
func attempt[T any](client ai.Client, call func(ai.Client) (T, error), validate func(T) error) outcome[T] {
	if client == nil {
		return outcome[T]{err: ai.ErrUnavailable}
	}
	v, err := call(client)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		var zero T
		return outcome[T]{value: zero, err: err}
	}
	return outcome[T]{value: v}
}

// resolve returns the collaborator value, or the local fallback when the step
// failed. Failures are logged, counted and added to the trace.
func resolve[T any](ctx context.Context, s *Service, tr *trace, step fallbacks.Step, o outcome[T], local func() T) (T, bool) {
	if o.ok() {
		return o.value, true
	}
	tr.degraded = append(tr.degraded, Degradation{Step: step, Err: o.err})
	slog.Default().WarnContext(ctx, "ai step unavailable, using local heuristics",
		"step", string(step),
		"error", o.err,
	)
	if s.Metrics != nil {
		s.Metrics.ObserveFallback(string(step))
	}
	return local(), false
}
