package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, tenant string, id RecordID) (*Record, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Record, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Record, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (Summary, error)
}

// ReportStore port for archiving rendered reports.
type ReportStore interface {
	PutReport(ctx context.Context, key string, body []byte) (string, error)
}

// EventPublisher port for announcing finished analyses.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, r *Record) error
}
