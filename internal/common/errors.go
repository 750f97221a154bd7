// Package common defines sentinel errors shared by the store, repository,
// and service layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Input errors detected before reaching storage.
	ErrValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Storage transport failures. Not retried; fatal to the current request.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Generic internal failure the service layer surfaces when it does not
	// want to leak the underlying cause.
	ErrInternal = errors.New("internal error")
)
