package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

type fakeRow []any

func (f fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f[i].(string)
		case *[]byte:
			*p = f[i].([]byte)
		case *time.Time:
			*p = f[i].(time.Time)
		}
	}
	return nil
}

func TestScanRecordKeepsReportURL(t *testing.T) {
	raw, _ := json.Marshal(analysis.Response{AuthenticityScore: 88, IsAuthentic: true})
	rec, err := scanRecord(fakeRow{"r9", "acme", "url", "https://example.org", "", "", raw, "http://minio/r9.json", time.Now()})
	if err != nil {
		t.Fatalf("scanRecord: %v", err)
	}
	if rec.ID != "r9" || rec.ContentType != analysis.ContentURL {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.ReportURL != "http://minio/r9.json" || !rec.Response.IsAuthentic {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestScanRecordRejectsBadJSON(t *testing.T) {
	_, err := scanRecord(fakeRow{"r9", "acme", "url", "x", "", "", []byte("{"), "-", time.Now()})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestJSONOrEmptyWrapsPlainText(t *testing.T) {
	if got := jsonOrEmpty("timeout"); got != `{"raw":"timeout"}` {
		t.Fatalf("got %q", got)
	}
	if got := jsonOrEmpty(" "); got != "{}" {
		t.Fatalf("got %q", got)
	}
}
