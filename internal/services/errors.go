// Package services defines the business logic for compatibility profiles and
// discovery ranking. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrUnknownQuestion is returned when an answer references a question id
	// that is not part of the current catalog.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrEmptyAnswer is returned when a submitted answer contains no text
	// after trimming.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrTooLong is returned when a submitted answer exceeds the maximum
	// configured rune length.
	ErrTooLong = errors.New("answer too long")

	// ErrAnswersUnavailable indicates the answer store could not be reached
	// for the requesting user. Ranking is meaningless without the requester's
	// own profile, so this is the one discovery failure that surfaces to the
	// caller instead of being skipped.
	ErrAnswersUnavailable = errors.New("answers unavailable")
)
