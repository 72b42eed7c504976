package mysql

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

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert/update analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO content_analyses
(id, tenant_id, content_type, content, file_name, file_type,
 authenticity_score, is_authentic, is_warning, fact_checked, detected_language,
 response_json, report_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 authenticity_score=VALUES(authenticity_score),
 is_authentic=VALUES(is_authentic), is_warning=VALUES(is_warning),
 fact_checked=VALUES(fact_checked), detected_language=VALUES(detected_language),
 response_json=VALUES(response_json), report_url=VALUES(report_url);
`
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
		rec.ID, stringOrDash(rec.TenantID), string(rec.ContentType), rec.Content, rec.FileName, rec.FileType,
		resp.AuthenticityScore, resp.IsAuthentic, resp.IsWarning, resp.FactCheck != nil, resp.DetectedLanguage,
		body, stringOrDash(rec.ReportURL), created,
	)
	return err
}

// Get by ID + Tenant
func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id domain.RecordID) (*domain.Record, error) {
	q := `SELECT ` + recordColumns + `
FROM content_analyses
WHERE tenant_id=? AND id=? LIMIT 1;`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, tenant, id))
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
WHERE tenant_id=? ORDER BY created_at DESC, id DESC LIMIT ?;`
	return r.query(ctx, q, tenant, limit)
}

// Paginate with offset + limit
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	q := `SELECT ` + recordColumns + `
FROM content_analyses
WHERE tenant_id=? ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;`
	return r.query(ctx, q, tenant, pageSize, (page-1)*pageSize)
}

// Summary counts analyses per score band since N days
func (r *AnalysisRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	const q = `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN authenticity_score >= ? THEN 1 ELSE 0 END),0),
       COALESCE(SUM(CASE WHEN authenticity_score >= ? AND authenticity_score < ? THEN 1 ELSE 0 END),0),
       COALESCE(SUM(CASE WHEN authenticity_score < ? THEN 1 ELSE 0 END),0)
FROM content_analyses
WHERE tenant_id=? AND created_at >= ?;
`
	var s domain.Summary
	err := r.db.QueryRowContext(ctx, q,
		domain.AuthenticThreshold,
		domain.WarningThreshold, domain.AuthenticThreshold,
		domain.WarningThreshold,
		tenant, sinceCut(time.Now(), sinceDays),
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
