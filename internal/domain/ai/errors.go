package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUnavailable indicates no collaborator is configured or it could not be reached.
var ErrUnavailable = errors.New("ai collaborator unavailable")

// ErrMalformedResponse indicates the collaborator answered with an unexpected shape.
var ErrMalformedResponse = errors.New("ai response malformed")

// ErrRateLimited indicates the local request budget for the collaborator is spent.
var ErrRateLimited = errors.New("ai request budget exhausted")
