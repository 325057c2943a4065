package bearerware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltlabs/go-auth/middleware/bearerware"
)

type testIdentity struct {
	id    int64
	name  string
	email string
}

func (t testIdentity) ID() int64     { return t.id }
func (t testIdentity) Name() string  { return t.name }
func (t testIdentity) Email() string { return t.email }

var errMissing = goerrors.New("missing authentication token", goerrors.CategoryAuth)

func newTestApp(authorizer bearerware.Authorizer) *fiber.App {
	app := fiber.New()
	app.Get("/protected", bearerware.New(bearerware.Config{Authorizer: authorizer}), func(c *fiber.Ctx) error {
		identity, ok := bearerware.IdentityFromLocals(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"email": identity.Email()})
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run("passes the bearer token through and attaches the identity", func(t *testing.T) {
		var seen string
		app := newTestApp(func(ctx context.Context, token string) (bearerware.Identity, error) {
			seen = token
			return testIdentity{id: 1, email: "ada@example.com"}, nil
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "some-token", seen)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "ada@example.com")
	})

	t.Run("missing header normalizes to an empty token", func(t *testing.T) {
		app := newTestApp(func(ctx context.Context, token string) (bearerware.Identity, error) {
			assert.Empty(t, token)
			return nil, errMissing
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non bearer scheme normalizes to an empty token", func(t *testing.T) {
		app := newTestApp(func(ctx context.Context, token string) (bearerware.Identity, error) {
			assert.Empty(t, token)
			return nil, errMissing
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejections answer 401", func(t *testing.T) {
		app := newTestApp(func(ctx context.Context, token string) (bearerware.Identity, error) {
			return nil, goerrors.New("authentication token is expired", goerrors.CategoryAuth)
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("operational faults answer 500", func(t *testing.T) {
		app := newTestApp(func(ctx context.Context, token string) (bearerware.Identity, error) {
			return nil, errors.New("connection refused")
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer any-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("context enricher propagates the identity", func(t *testing.T) {
		type ctxKey struct{}

		app := fiber.New()
		app.Get("/protected", bearerware.New(bearerware.Config{
			Authorizer: func(ctx context.Context, token string) (bearerware.Identity, error) {
				return testIdentity{id: 9, email: "ctx@example.com"}, nil
			},
			ContextEnricher: func(ctx context.Context, identity bearerware.Identity) context.Context {
				return context.WithValue(ctx, ctxKey{}, identity.ID())
			},
		}), func(c *fiber.Ctx) error {
			id, _ := c.UserContext().Value(ctxKey{}).(int64)
			return c.JSON(fiber.Map{"id": id})
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer token")

		resp, err := app.Test(req)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "9")
	})
}

func TestTokenFromHeader(t *testing.T) {
	app := fiber.New()

	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = bearerware.TokenFromHeader(c, "Bearer")
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer abc", "abc"},
		{"missing header", "", ""},
		{"scheme only", "Bearer", ""},
		{"wrong scheme", "Basic abc", ""},
		{"padded token", "Bearer   abc  ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
