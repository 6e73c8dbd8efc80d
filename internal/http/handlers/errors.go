// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes provide
// clients with a stable, machine-readable error taxonomy that supplements
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., unknown_question, answer_too_long) are
//     reserved for business logic errors that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeUnknownQuestion  = "unknown_question"
	ErrCodeEmptyAnswer      = "empty_answer"
	ErrCodeAnswerTooLong    = "answer_too_long"
	ErrCodeSubmitFailed     = "submit_failed"
	ErrCodeProfileFailed    = "profile_failed"
	ErrCodeResetFailed      = "reset_failed"
	ErrCodeDiscoverFailed   = "discover_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
