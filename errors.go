package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Rejection reasons. These are deliberately coarse: ErrInvalidCredentials
// collapses "no such user" and "wrong password" into a single observable
// reason so callers cannot enumerate registered emails.
var (
	ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS")

	ErrEmailTaken = goerrors.New("email already registered", goerrors.CategoryConflict).
			WithTextCode("EMAIL_TAKEN")

	ErrMissingToken = goerrors.New("missing authentication token", goerrors.CategoryAuth).
			WithTextCode("MISSING_TOKEN")

	ErrTokenExpired = goerrors.New("authentication token is expired", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED")

	ErrTokenMalformed = goerrors.New("authentication token is malformed", goerrors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED")

	ErrUnknownSubject = goerrors.New("token subject no longer exists", goerrors.CategoryAuth).
				WithTextCode("UNKNOWN_SUBJECT")
)

// ErrMismatchedHashAndPassword is the hasher-level mismatch error. The
// password strategy maps it to ErrInvalidCredentials before it leaves the
// package.
var ErrMismatchedHashAndPassword = goerrors.New("hashed password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrInvalidDigest signals a corrupted stored password digest. It is an
// operational fault, not a bad request, and must never be collapsed into
// a credentials rejection.
var ErrInvalidDigest = goerrors.New("stored password digest is malformed", goerrors.CategoryInternal).
	WithTextCode("INVALID_DIGEST")

// ErrNoEmptyString is the error we return for empty required inputs
var ErrNoEmptyString = goerrors.New("value must not be an empty string", goerrors.CategoryValidation).
	WithTextCode("EMPTY_STRING")

// IsRejection reports whether err is a client rejection (an unauthorized
// or conflict class outcome) as opposed to an operational fault. The HTTP
// adapter uses this to decide between a 4xx and a 5xx response.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryAuth, goerrors.CategoryConflict, goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return true
		}
	}
	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolationError detects unique index violations across the SQL
// drivers we run against. The store's unique index on email is the actual
// source of truth for registration, so a lost pre-check race still has to
// surface as EMAIL_TAKEN.
func IsUniqueViolationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value")
}
