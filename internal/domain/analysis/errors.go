package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is wrapped by every ValidationError.
	ErrInvalidInput = errors.New("invalid analysis input")
	// ErrNotFound is returned by repositories for unknown records.
	ErrNotFound = errors.New("analysis not found")
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validate checks the request invariants: known content type, non-empty content.
func (r Request) Validate() error {
	switch r.contentType {
	case ContentText, ContentURL, ContentMedia:
	case "":
		return &ValidationError{Field: "contentType", Reason: "is required"}
	default:
		return &ValidationError{Field: "contentType", Reason: fmt.Sprintf("unsupported value %q (allowed: text, url, media)", r.contentType)}
	}
	if strings.TrimSpace(r.Content) == "" {
		return &ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	return nil
}
