// Package common defines shared sentinel errors used across the user
// directory and session layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// Deletion guard errors.
	ErrSelfDeletion         = errors.New("cannot delete the current user")
	ErrConfirmationDeclined = errors.New("confirmation declined")
)
