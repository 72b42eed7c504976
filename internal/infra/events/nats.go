package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

const DefaultSubject = "verifact.analysis.completed"

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
}

// Completed is the payload announced for each stored analysis.
type Completed struct {
	ID                string               `json:"id"`
	TenantID          string               `json:"tenant_id"`
	ContentType       analysis.ContentType `json:"content_type"`
	AuthenticityScore int                  `json:"authenticity_score"`
	IsAuthentic       bool                 `json:"is_authentic"`
	IsWarning         bool                 `json:"is_warning"`
	Verdict           analysis.Verdict     `json:"verdict,omitempty"`
	DetectedLanguage  string               `json:"detected_language,omitempty"`
	ReportURL         string               `json:"report_url,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

func NewCompleted(r *analysis.Record) Completed {
	c := Completed{
		ID:                string(r.ID),
		TenantID:          r.TenantID,
		ContentType:       r.ContentType,
		AuthenticityScore: r.Response.AuthenticityScore,
		IsAuthentic:       r.Response.IsAuthentic,
		IsWarning:         r.Response.IsWarning,
		DetectedLanguage:  r.Response.DetectedLanguage,
		ReportURL:         r.ReportURL,
		CreatedAt:         r.CreatedAt,
	}
	if r.Response.FactCheck != nil {
		c.Verdict = r.Response.FactCheck.Verdict
	}
	return c
}

type Publisher struct {
	conn    conn
	subject string
}

func NewPublisher(c conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{conn: c, subject: subject}
}

// Connect dials NATS with unlimited reconnects.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Default().Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Default().Warn("nats connection lost", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

// PublishCompleted implementasi analysis.EventPublisher
func (p *Publisher) PublishCompleted(_ context.Context, r *analysis.Record) error {
	data, err := json.Marshal(NewCompleted(r))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

var _ analysis.EventPublisher = (*Publisher)(nil)
