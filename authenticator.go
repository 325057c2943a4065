package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// AuthResult is the outcome of a successful login or registration:
// a signed access token plus the identity it was issued for.
type AuthResult struct {
	Token    string
	Identity Identity
}

// Auther combines the password and bearer strategies behind the three
// entry points the HTTP layer consumes: Login, Register, and Authorize.
type Auther struct {
	store        UserStore
	provider     IdentityProvider
	bearer       *BearerProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator. Configuration is passed
// explicitly; an empty signing key or non-positive TTL is a construction
// error, never silently replaced by a default.
func NewAuthenticator(store UserStore, cfg Config) (*Auther, error) {
	if store == nil {
		return nil, goerrors.New("user store is required", goerrors.CategoryBadInput)
	}

	tokenService, err := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenTTL(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		defLogger{},
	)
	if err != nil {
		return nil, err
	}

	provider := NewUserProvider(store)

	return &Auther{
		store:        store,
		provider:     provider,
		bearer:       NewBearerProvider(tokenService, provider),
		tokenService: tokenService,
		logger:       defLogger{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}
	s.logger = logger
	if p, ok := s.provider.(*UserProvider); ok {
		p.WithLogger(logger)
	}
	s.bearer.WithLogger(logger)
	return s
}

// WithTokenValidator sets a custom token validator for bearer
// verification while keeping issuance on the configured TokenService.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	if validator != nil {
		s.bearer = NewBearerProvider(validator, s.provider)
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the email/password pair and issues an access token.
func (s *Auther) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		if IsRejection(err) {
			s.logger.Info("login rejected", "error", err)
		} else {
			s.logger.Error("login verify identity error", "error", err)
		}
		return nil, err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("login token generation error", "error", err)
		return nil, err
	}

	return &AuthResult{Token: token, Identity: identity}, nil
}

// Register creates a new user and issues a token, so registration
// auto-authenticates. The existence pre-check and the insert are not one
// transaction; the store's unique index on email is the authoritative
// guard, and losing the race surfaces as the same EMAIL_TAKEN rejection.
func (s *Auther) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	taken, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("register uniqueness check error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email availability")
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, name, email, hash)
	if err != nil {
		if IsUniqueViolationError(err) || goerrors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("register create user error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	identity := identityFromUser(user)

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("register token generation error", "error", err)
		return nil, err
	}

	return &AuthResult{Token: token, Identity: identity}, nil
}

// Authorize resolves the identity behind a bearer token. An absent token
// is its own rejection reason, distinct from an invalid one.
func (s *Auther) Authorize(ctx context.Context, tokenString string) (Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}
	return s.bearer.VerifyToken(ctx, tokenString)
}

var _ Authenticator = (*Auther)(nil)
