package domain

import "errors"

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrDraftNotFound    = errors.New("wizard draft not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrSecretNotFound   = errors.New("secret not found")
	ErrSessionNotFound  = errors.New("no stored session")

	// ErrValidation marks problems caught before any request is sent.
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("current identity may not manage billing for this business")
)
