package service

import "errors"

// Common service errors - sentinel errors returned by Marketplace operations.
// Callers check for them with errors.Is().
//
// Error handling principles:
// 1. Expected failures return one of these sentinels, possibly wrapped with detail
// 2. Persistence failures wrap a *store.StoreError and leave memory as it was
// 3. A failed operation never leaves a partial mutation behind
var (
	// ErrNotLoggedIn indicates the operation needs a current session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidCredentials covers every authentication failure: unknown
	// identifier, wrong password, or wrong verification code. It never says
	// which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation indicates input that breaks an entity invariant.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown identifier.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness rule would be broken, such as a
	// second account with the same email.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidID indicates a missing or malformed identifier.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrNoVerificationCode indicates verification was attempted before a
	// code was issued.
	ErrNoVerificationCode = errors.New("no verification code issued")
)
