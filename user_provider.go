package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// UserProvider is the password verification strategy: it resolves an
// identity from an email and cleartext password against a UserStore.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. A missing user and a wrong password produce the identical
// rejection so the caller cannot tell which emails are registered.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		// digest corruption is an operational fault, not a bad password
		u.logger.Error("password digest verification fault", "user_id", user.ID, "error", err)
		return nil, err
	}

	return identityFromUser(user), nil
}

// FindIdentityByID resolves an identity by its stored id. Not-found
// errors pass through untouched so callers can map them to their own
// rejection reason.
func (u *UserProvider) FindIdentityByID(ctx context.Context, id int64) (Identity, error) {
	user, err := u.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, goerrors.New("user not found", goerrors.CategoryNotFound)
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:        user.ID,
		name:      user.Name,
		email:     user.Email,
		createdAt: user.CreatedAt,
		updatedAt: user.UpdatedAt,
	}
}

func (a authIdentity) ID() int64 {
	return a.id
}

func (a authIdentity) Name() string {
	return a.name
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) CreatedAt() time.Time {
	return a.createdAt
}

func (a authIdentity) UpdatedAt() time.Time {
	return a.updatedAt
}

var _ Identity = authIdentity{}
