package auth

import "errors"

// Common authentication errors
var (
	// ErrPasswordMismatch indicates the password does not match the stored hash
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrPasswordTooLong indicates the password exceeds what bcrypt can hash
	ErrPasswordTooLong = errors.New("password is too long")

	// ErrCodeMismatch indicates a verification code does not match the stored hash
	ErrCodeMismatch = errors.New("verification code does not match")
)
