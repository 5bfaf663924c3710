package errors

import (
	"errors"
	"fmt"
)

// Common error types for the MindMate client session core
var (
	// Login / signup errors
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailUnverified        = errors.New("email not verified")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrRegistrationFailed     = errors.New("registration failed")

	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")

	// OAuth / account linking errors
	ErrOAuthExchangeFailed = errors.New("oauth exchange failed")
	ErrLinkingDeclined     = errors.New("account linking declined")
	ErrLinkingFailed       = errors.New("account linking failed")
	ErrUnsupportedProvider = errors.New("unsupported identity provider")
	ErrMissingAuthCode     = errors.New("authorization code missing")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
