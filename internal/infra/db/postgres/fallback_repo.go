package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/verifact/internal/domain/fallbacks"
)

type FallbackRepository struct{ db *sql.DB }

func NewFallbackRepository(db *sql.DB) *FallbackRepository { return &FallbackRepository{db: db} }

func (r *FallbackRepository) Save(ctx context.Context, e *domain.Event) error {
	const q = `
INSERT INTO analysis_fallbacks
  (tenant_id, analysis_id, step, message, details_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;`
	msg := e.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return r.db.QueryRowContext(ctx, q,
		stringOrDash(e.TenantID), stringOrDash(e.AnalysisID), stringOrDash(string(e.Step)),
		msg, jsonOrEmpty(e.DetailsJSON), created,
	).Scan(&e.ID)
}

func (r *FallbackRepository) ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	const q = `
SELECT id, tenant_id, analysis_id, step, message, details_json, created_at
FROM analysis_fallbacks
WHERE tenant_id = $1 AND analysis_id = $2
ORDER BY created_at DESC, id DESC
LIMIT $3;`
	rows, err := r.db.QueryContext(ctx, q, tenant, analysisID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Event
	for rows.Next() {
		var e domain.Event
		var step string
		if err := rows.Scan(&e.ID, &e.TenantID, &e.AnalysisID, &step, &e.Message, &e.DetailsJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Step = domain.Step(step)
		out = append(out, &e)
	}
	return out, rows.Err()
}
