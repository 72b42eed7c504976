package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/verifact/internal/domain/analysis"
	"github.com/bryanwahyu/verifact/internal/domain/fallbacks"
)

// ErrHistoryDisabled is returned by history use-cases without a repository.
var ErrHistoryDisabled = errors.New("analysis history is not configured")

// AnalyzeAndStore runs Analyze and hands the result to the persistence
// collaborators. Archive, save and publish failures are logged only; the
// analysis itself is always returned.
func (s *Service) AnalyzeAndStore(ctx context.Context, tenant string, req domain.Request) (*domain.Record, error) {
	resp, tr, err := s.analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		ID:          domain.RecordID(uuid.New().String()),
		TenantID:    tenant,
		ContentType: req.ContentType(),
		Content:     req.Content,
		FileName:    req.FileName,
		FileType:    req.FileType,
		Response:    resp,
		CreatedAt:   s.now().UTC(),
	}

	// arsipkan report ke object storage
	if s.Reports != nil {
		if url, err := s.archive(ctx, rec); err != nil {
			slog.Default().WarnContext(ctx, "report archive failed", "analysis_id", rec.ID, "error", err)
		} else {
			rec.ReportURL = url
		}
	}

	if s.Repo != nil {
		if err := s.Repo.Save(ctx, rec); err != nil {
			slog.Default().ErrorContext(ctx, "failed to persist analysis", "analysis_id", rec.ID, "tenant", tenant, "error", err)
		}
	}

	if s.Fallbacks != nil {
		for _, d := range tr.degraded {
			ev := &fallbacks.Event{
				TenantID:    tenant,
				AnalysisID:  string(rec.ID),
				Step:        d.Step,
				Message:     d.Err.Error(),
				DetailsJSON: fmt.Sprintf(`{"content_type":%q}`, rec.ContentType),
				CreatedAt:   rec.CreatedAt,
			}
			if err := s.Fallbacks.Save(ctx, ev); err != nil {
				slog.Default().WarnContext(ctx, "failed to persist fallback event", "analysis_id", rec.ID, "step", string(d.Step), "error", err)
			}
		}
	}

	if s.Events != nil {
		if err := s.Events.PublishCompleted(ctx, rec); err != nil {
			slog.Default().WarnContext(ctx, "failed to publish analysis event", "analysis_id", rec.ID, "error", err)
		}
	}

	return rec, nil
}

func (s *Service) archive(ctx context.Context, rec *domain.Record) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	key := fmt.Sprintf("%s/%s/%s.json", rec.TenantID, rec.CreatedAt.Format("2006/01/02"), rec.ID)
	return s.Reports.PutReport(ctx, key, body)
}

// Get ambil 1 analysis by id
func (s *Service) Get(ctx context.Context, tenant string, id domain.RecordID) (*domain.Record, error) {
	if s.Repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Repo.Get(ctx, tenant, id)
}

// Latest ambil N analysis terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Record, error) {
	if s.Repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Repo.Latest(ctx, tenant, limit)
}

// List returns one page of analyses, newest first.
func (s *Service) List(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	if s.Repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// Summary rekap hasil analysis N hari terakhir
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	if s.Repo == nil {
		return domain.Summary{}, ErrHistoryDisabled
	}
	return s.Repo.Summary(ctx, tenant, sinceDays)
}

// FallbacksFor lists the degraded steps recorded for an analysis.
func (s *Service) FallbacksFor(ctx context.Context, tenant, analysisID string, limit int) ([]*fallbacks.Event, error) {
	if s.Fallbacks == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Fallbacks.ListByAnalysis(ctx, tenant, analysisID, limit)
}
