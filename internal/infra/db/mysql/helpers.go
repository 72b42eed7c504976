package mysql

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

const defaultLimit = 20

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// jsonOrEmpty keeps details valid JSON; anything else is wrapped as {"raw": ...}.
func jsonOrEmpty(details string) string {
	if strings.TrimSpace(details) == "" {
		return "{}"
	}
	var js any
	if json.Unmarshal([]byte(details), &js) != nil {
		b, _ := json.Marshal(map[string]string{"raw": details})
		return string(b)
	}
	return details
}

func sinceCut(now time.Time, sinceDays int) time.Time {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	return now.AddDate(0, 0, -sinceDays)
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads the columns listed in recordColumns.
func scanRecord(row scanner) (*analysis.Record, error) {
	var (
		rec    analysis.Record
		ct     string
		raw    []byte
		report string
	)
	if err := row.Scan(&rec.ID, &rec.TenantID, &ct, &rec.Content, &rec.FileName, &rec.FileType,
		&raw, &report, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.ContentType = analysis.ContentType(ct)
	if report != "-" {
		rec.ReportURL = report
	}
	if err := json.Unmarshal(raw, &rec.Response); err != nil {
		return nil, err
	}
	return &rec, nil
}
