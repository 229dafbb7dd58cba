// Package common defines shared sentinel and typed errors used across
// Messenger components. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrBadCredentials is returned on a local sign-in password mismatch.
	ErrBadCredentials = errors.New("incorrect email or password")

	// ErrChangePassword is returned when the supplied current password does
	// not match the stored hash during a password change.
	ErrChangePassword = errors.New("current password is incorrect")

	// ErrDeleteAccount is returned when the confirmation email does not match
	// the account email on account deletion.
	ErrDeleteAccount = errors.New("email does not match account email")

	// ErrUserNotFound is returned when an operation references a user (or a
	// graph edge endpoint) that does not exist. Foreign-key violations from
	// edge operations are translated to this error.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfFollow is returned when a user tries to follow themselves and
	// self-edges are disabled.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// UniqueConflictError reports a store-level uniqueness violation on one or
// more user fields (email, username, facebook_id). It is an expected failure
// for profile updates and registrations and must never crash request handling.
type UniqueConflictError struct {
	// Fields lists the columns the violated constraint covers, e.g. ["email"].
	Fields []string
	Err    error
}

func (e *UniqueConflictError) Error() string {
	if len(e.Fields) == 0 {
		return "unique constraint violation"
	}
	return fmt.Sprintf("%s already in use", strings.Join(e.Fields, ", "))
}

func (e *UniqueConflictError) Unwrap() error { return e.Err }

// SocialAuthError wraps any failure during federated-identity reconciliation.
// It always carries the underlying cause.
type SocialAuthError struct {
	Provider string
	Err      error
}

func (e *SocialAuthError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Provider, e.Err)
}

func (e *SocialAuthError) Unwrap() error { return e.Err }
