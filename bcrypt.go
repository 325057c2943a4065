package auth

import (
	"errors"

	"github.com/google/uuid"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password hash. The cost factor is 12 (see
// bcrypt_cost.go); inputs beyond bcrypt's 72 byte limit are rejected, not
// truncated.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", goerrors.Wrap(err, goerrors.CategoryValidation, "password exceeds the 72 byte bcrypt limit")
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password. The comparison is constant time. A
// mismatch returns ErrMismatchedHashAndPassword; a digest that bcrypt
// cannot parse returns ErrInvalidDigest so callers can tell a wrong
// password from storage corruption.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ErrMismatchedHashAndPassword
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			// could never have produced the stored digest
			return ErrMismatchedHashAndPassword
		default:
			return ErrInvalidDigest
		}
	}
	return nil
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
