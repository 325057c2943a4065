// Package bearerware provides a Fiber middleware that authorizes requests
// from the Authorization Bearer header and attaches the resolved identity
// to the request before the handler runs.
package bearerware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultContextKey is the Locals key the identity is stored under
const DefaultContextKey = "identity"

// defaultAuthScheme per RFC 6750
const defaultAuthScheme = "Bearer"

// Identity mirrors the auth package identity surface without importing it,
// to avoid an import cycle.
type Identity interface {
	ID() int64
	Name() string
	Email() string
}

// Authorizer resolves a raw bearer token (possibly empty, when the header
// is absent) into an identity or a rejection.
type Authorizer func(ctx context.Context, token string) (Identity, error)

type Config struct {
	// Authorizer is required
	Authorizer Authorizer

	// ContextKey is the Locals key for the resolved identity. Defaults to
	// DefaultContextKey.
	ContextKey string

	// AuthScheme expected in the Authorization header. Defaults to Bearer.
	AuthScheme string

	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool

	// ErrorHandler maps authorization failures to a response. The default
	// answers 401 for rejections and 500 for operational faults.
	ErrorHandler func(*fiber.Ctx, error) error

	// ContextEnricher propagates the identity into the request's standard
	// context after successful authorization.
	ContextEnricher func(context.Context, Identity) context.Context
}

// New returns the configured middleware handler
func New(config Config) fiber.Handler {
	if config.Authorizer == nil {
		panic("bearerware: Authorizer is required")
	}

	if config.ContextKey == "" {
		config.ContextKey = DefaultContextKey
	}

	if config.AuthScheme == "" {
		config.AuthScheme = defaultAuthScheme
	}

	if config.ErrorHandler == nil {
		config.ErrorHandler = defaultErrorHandler
	}

	return func(c *fiber.Ctx) error {
		if config.Filter != nil && config.Filter(c) {
			return c.Next()
		}

		token := TokenFromHeader(c, config.AuthScheme)

		identity, err := config.Authorizer(c.UserContext(), token)
		if err != nil {
			return config.ErrorHandler(c, err)
		}

		c.Locals(config.ContextKey, identity)

		if config.ContextEnricher != nil {
			c.SetUserContext(config.ContextEnricher(c.UserContext(), identity))
		}

		return c.Next()
	}
}

// TokenFromHeader extracts the bearer token from the Authorization
// header. A missing header, a different scheme, or a blank token all
// normalize to the empty string, which the authorizer treats as an
// absent token.
func TokenFromHeader(c *fiber.Ctx, scheme string) string {
	raw := c.Get(fiber.HeaderAuthorization)
	if raw == "" {
		return ""
	}

	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// IdentityFromLocals retrieves the identity a previous New handler stored
func IdentityFromLocals(c *fiber.Ctx, key ...string) (Identity, bool) {
	k := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}

	identity, ok := c.Locals(k).(Identity)
	return identity, ok
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	if isRejection(err) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid token",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Authentication error",
	})
}

// isRejection mirrors the root package classifier so the middleware does
// not depend on it.
func isRejection(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryAuth, goerrors.CategoryConflict, goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return true
		}
	}
	return false
}
