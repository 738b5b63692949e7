// Package common defines shared constants and sentinel errors used across
// the ParcelAce client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// API-level errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrUnavailable    = errors.New("server unavailable")

	// Service-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
)
