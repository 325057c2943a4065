package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// BearerProvider is the bearer token verification strategy: it validates
// a raw token against a TokenValidator and resolves the claim subject
// through an IdentityProvider.
type BearerProvider struct {
	validator TokenValidator
	provider  IdentityProvider
	logger    Logger
}

// NewBearerProvider will create a new BearerProvider
func NewBearerProvider(validator TokenValidator, provider IdentityProvider) *BearerProvider {
	return &BearerProvider{
		validator: validator,
		provider:  provider,
		logger:    defLogger{},
	}
}

func (b *BearerProvider) WithLogger(l Logger) *BearerProvider {
	if l != nil {
		b.logger = l
	}
	return b
}

// VerifyToken validates the token and resolves its subject. Codec
// failures (expired, malformed) propagate as-is; a valid token whose
// subject no longer exists is rejected as UNKNOWN_SUBJECT, e.g. a user
// deleted after issuance. Every call re-verifies signature and expiry
// from scratch; nothing is cached.
func (b *BearerProvider) VerifyToken(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := b.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	identity, err := b.provider.FindIdentityByID(ctx, claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrUnknownSubject
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve token subject")
	}

	return identity, nil
}
