package fallbacks

import "context"

// Repository defines persistence for fallback events
type Repository interface {
	Save(ctx context.Context, e *Event) error
	ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*Event, error)
}
