package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

type recordingConn struct {
	subject string
	data    []byte
	err     error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subject, c.data = subject, data
	return c.err
}

func sampleRecord() *analysis.Record {
	return &analysis.Record{
		ID:          "r1",
		TenantID:    "acme",
		ContentType: analysis.ContentText,
		Response: analysis.Response{
			AuthenticityScore: 45,
			DetectedLanguage:  "en",
			FactCheck:         &analysis.FactCheckResult{Verdict: analysis.VerdictFalse},
		},
		CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPublishCompleted(t *testing.T) {
	c := &recordingConn{}
	p := NewPublisher(c, "")
	if err := p.PublishCompleted(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("PublishCompleted: %v", err)
	}
	if c.subject != DefaultSubject {
		t.Fatalf("subject = %q", c.subject)
	}
	var got Completed
	if err := json.Unmarshal(c.data, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.ID != "r1" || got.AuthenticityScore != 45 || got.Verdict != analysis.VerdictFalse {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestPublishCompletedWithoutFactCheck(t *testing.T) {
	rec := sampleRecord()
	rec.Response.FactCheck = nil
	if v := NewCompleted(rec).Verdict; v != "" {
		t.Fatalf("expected empty verdict, got %q", v)
	}
}

func TestPublishCompletedError(t *testing.T) {
	boom := errors.New("no responders")
	p := NewPublisher(&recordingConn{err: boom}, "custom.subject")
	if err := p.PublishCompleted(context.Background(), sampleRecord()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
