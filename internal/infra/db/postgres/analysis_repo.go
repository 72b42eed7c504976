package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/verifact/internal/domain/analysis"
)

const recordColumns = `id, tenant_id, content_type, content, file_name, file_type,
       response_json, report_url, created_at`

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

// Save insert/update analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO content_analyses
(id, tenant_id, content_type, content, file_name, file_type,
 authenticity_score, is_authentic, is_warning, fact_checked, detected_language,
 response_json, report_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,$9,$10,$11,
        $12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
 authenticity_score = EXCLUDED.authenticity_score,
 is_authentic = EXCLUDED.is_authentic,
 is_warning = EXCLUDED.is_warning,
 fact_checked = EXCLUDED.fact_checked,
 detected_language = EXCLUDED.detected_language,
 response_json = EXCLUDED.response_json,
 report_url = EXCLUDED.report_url;`

	body, err := json.Marshal(rec.Response)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	resp := rec.Response
	_, err = r.db.ExecContext(ctx, q,
		string(rec.ID), stringOrDash(rec.TenantID), string(rec.ContentType), rec.Content, rec.FileName, rec.FileType,
		resp.AuthenticityScore, resp.IsAuthentic, resp.IsWarning, resp.FactCheck != nil, resp.DetectedLanguage,
		body, stringOrDash(rec.ReportURL), created,
	)
	return err
}

// Get by ID + Tenant
func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id domain.RecordID) (*domain.Record, error) {
	q := `SELECT ` + recordColumns + `
FROM content_analyses
WHERE tenant_id=$1 AND id=$2
LIMIT 1;`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, tenant, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// Latest analyses per tenant
func (r *AnalysisRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := `SELECT ` + recordColumns + `
FROM content_analyses
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	return r.query(ctx, q, tenant, limit)
}

func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	q := `SELECT ` + recordColumns + `
FROM content_analyses
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;`
	return r.query(ctx, q, tenant, pageSize, (page-1)*pageSize)
}

// Summary counts analyses per score band since N days
func (r *AnalysisRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE authenticity_score >= $1),
       COUNT(*) FILTER (WHERE authenticity_score >= $2 AND authenticity_score < $1),
       COUNT(*) FILTER (WHERE authenticity_score < $2)
FROM content_analyses
WHERE tenant_id=$3 AND created_at >= $4;`
	var s domain.Summary
	cut := time.Now().AddDate(0, 0, -sinceDays)
	err := r.db.QueryRowContext(ctx, q,
		domain.AuthenticThreshold, domain.WarningThreshold, tenant, cut,
	).Scan(&s.Total, &s.Authentic, &s.Warning, &s.Flagged)
	if err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}

func (r *AnalysisRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()
	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
