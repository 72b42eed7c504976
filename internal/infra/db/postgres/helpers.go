package postgres

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

const defaultLimit = 20

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func jsonOrEmpty(details string) string {
	if strings.TrimSpace(details) == "" {
		return "{}"
	}
	if !json.Valid([]byte(details)) {
		b, _ := json.Marshal(map[string]string{"raw": details})
		return string(b)
	}
	return details
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*analysis.Record, error) {
	var (
		rec    analysis.Record
		id, ct string
		raw    []byte
		report string
	)
	if err := row.Scan(&id, &rec.TenantID, &ct, &rec.Content, &rec.FileName, &rec.FileType,
		&raw, &report, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.ID = analysis.RecordID(id)
	rec.ContentType = analysis.ContentType(ct)
	if report != "-" {
		rec.ReportURL = report
	}
	if err := json.Unmarshal(raw, &rec.Response); err != nil {
		return nil, err
	}
	return &rec, nil
}
