package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents the structured claim set carried by an access token
type AuthClaims interface {
	Subject() string
	UserID() int64
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The claim shape
// is fixed: uid and email are required, as are iat and exp. Tokens whose
// payload does not match are rejected as malformed rather than passed
// through as loose maps.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       int64  `json:"uid,omitempty"`
	UserEmail string `json:"email,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the subject's user id. The uid claim is authoritative;
// sub carries the same value as a decimal string for interop.
func (c *JWTClaims) UserID() int64 {
	if c.UID != 0 {
		return c.UID
	}
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Email returns the subject's email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// validateShape enforces the fixed claim schema after signature and expiry
// checks have passed.
func (c *JWTClaims) validateShape() error {
	switch {
	case c.UserID() <= 0:
		return ErrTokenMalformed
	case c.UserEmail == "":
		return ErrTokenMalformed
	case c.RegisteredClaims.IssuedAt == nil:
		return ErrTokenMalformed
	case c.RegisteredClaims.ExpiresAt == nil:
		return ErrTokenMalformed
	}
	return nil
}

// ensureTokenID stamps a unique jti on claims that do not carry one yet
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
